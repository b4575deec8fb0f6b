package module

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		ref     string
		want    Version
		wantErr bool
	}{
		{"glm/0.9.9.8", Version{"glm", "0.9.9.8"}, false},
		{"glm@0.9.9.8", Version{"glm", "0.9.9.8"}, false},
		{"stb/cci.20240531", Version{"stb", "cci.20240531"}, false},
		{" fmt/11.2.0 ", Version{"fmt", "11.2.0"}, false},
		{"glm", Version{}, true},
		{"/1.0", Version{}, true},
		{"glm/", Version{}, true},
		{"", Version{}, true},
		{"zlib/1.2.13@user/channel", Version{}, true},
		{"zlib/1.2.13@_/_", Version{}, true},
		{"zlib/1.2.13#8f1b2c", Version{}, true},
		{"zlib/1.2/13", Version{}, true},
		{"zlib@1.2@13", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := Parse(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	v := Version{Path: "vulkan-loader", Version: "1.3.243.0"}
	if got, want := v.String(), "vulkan-loader/1.3.243.0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Version{Path: "glfw"}).String(); got != "glfw" {
		t.Errorf("String() without version = %q, want %q", got, "glfw")
	}
}
