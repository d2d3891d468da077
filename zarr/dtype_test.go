package zarr

import "testing"

func TestParseDType(t *testing.T) {
	tests := []struct {
		input     string
		wantName  string
		wantSize  int
		wantBig   bool
		expectErr bool
	}{
		{input: "<f4", wantName: "float32", wantSize: 4},
		{input: "<f8", wantName: "float64", wantSize: 8},
		{input: ">f4", wantName: "float32", wantSize: 4, wantBig: true},
		{input: "<i8", wantName: "int64", wantSize: 8},
		{input: ">i2", wantName: "int16", wantSize: 2, wantBig: true},
		{input: "<u4", wantName: "uint32", wantSize: 4},
		{input: "|i1", wantName: "int8", wantSize: 1},
		{input: "|u1", wantName: "uint8", wantSize: 1},
		{input: "|b1", wantName: "bool", wantSize: 1},
		{input: "x2", expectErr: true},  // invalid marker
		{input: "<x4", expectErr: true}, // unknown kind
		{input: "<i", expectErr: true},  // incomplete size
		{input: "<i3", expectErr: true}, // unsupported width
		{input: "<f2", expectErr: true}, // unsupported float width
		{input: "|i4", expectErr: true}, // '|' on multi-byte type
		{input: "<b4", expectErr: true}, // bool wider than one byte
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dt, err := ParseDType(tt.input)

			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for input %q, got %+v", tt.input, dt)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if dt.Name != tt.wantName {
				t.Errorf("name = %q, want %q", dt.Name, tt.wantName)
			}
			if dt.Size != tt.wantSize {
				t.Errorf("size = %d, want %d", dt.Size, tt.wantSize)
			}
			if dt.BigEndian != tt.wantBig {
				t.Errorf("bigEndian = %v, want %v", dt.BigEndian, tt.wantBig)
			}
		})
	}
}

func TestDTypeTag(t *testing.T) {
	for _, tag := range []string{"<f4", ">f8", "<i2", "|b1", "|u1", ">u8"} {
		dt, err := ParseDType(tag)
		if err != nil {
			t.Fatalf("ParseDType(%q): %v", tag, err)
		}
		if got := dt.Tag(); got != tag {
			t.Errorf("Tag() = %q, want %q", got, tag)
		}
	}
}
