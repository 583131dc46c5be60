package pypi

import "testing"

func TestCanonicalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flit_core", "flit-core"},
		{"Flit.Core", "flit-core"},
		{"charset__normalizer", "charset-normalizer"},
		{"oslo.messaging", "oslo-messaging"},
		{"Django", "django"},
		{"a", "a"},
		{"zope.interface-5", "zope-interface-5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CanonicalizeName(tt.in); got != tt.want {
				t.Errorf("CanonicalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameToFilenamePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flit_core", "flit_core"},
		{"charset-normalizer", "charset_normalizer"},
		{"oslo.messaging", "oslo_messaging"},
		{"Setuptools_SCM", "setuptools_scm"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NameToFilenamePrefix(tt.in); got != tt.want {
				t.Errorf("NameToFilenamePrefix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"a", "requests", "flit_core", "zope.interface", "A2"}
	for _, name := range valid {
		if !IsValidName(name) {
			t.Errorf("IsValidName(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "-requests", "requests-", ".dot", "name with space"}
	for _, name := range invalid {
		if IsValidName(name) {
			t.Errorf("IsValidName(%q) = true, want false", name)
		}
	}
}
