package pypi

import (
	"reflect"
	"testing"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		raw        string
		wantName   string
		wantCanon  string
		wantExtras []string
		wantSpec   string
		wantMarker string
		wantURL    string
	}{
		{
			raw:       "requests",
			wantName:  "requests",
			wantCanon: "requests",
		},
		{
			raw:       "flit_core>=3.2,<4",
			wantName:  "flit_core",
			wantCanon: "flit-core",
			wantSpec:  ">=3.2,<4",
		},
		{
			raw:        "requests[security,socks]==2.31.0",
			wantName:   "requests",
			wantCanon:  "requests",
			wantExtras: []string{"security", "socks"},
			wantSpec:   "==2.31.0",
		},
		{
			raw:        "tomli>=1.1.0; python_version < '3.11'",
			wantName:   "tomli",
			wantCanon:  "tomli",
			wantSpec:   ">=1.1.0",
			wantMarker: "python_version < '3.11'",
		},
		{
			raw:       "Oslo.Messaging (>=14.0)",
			wantName:  "Oslo.Messaging",
			wantCanon: "oslo-messaging",
			wantSpec:  ">=14.0",
		},
		{
			raw:       "pip @ https://example.com/pip-23.0.tar.gz",
			wantName:  "pip",
			wantCanon: "pip",
			wantURL:   "https://example.com/pip-23.0.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r, err := ParseRequirement(tt.raw)
			if err != nil {
				t.Fatalf("ParseRequirement(%q) returned error: %v", tt.raw, err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
			if r.CanonicalName() != tt.wantCanon {
				t.Errorf("CanonicalName() = %q, want %q", r.CanonicalName(), tt.wantCanon)
			}
			if tt.wantExtras != nil && !reflect.DeepEqual(r.Extras(), tt.wantExtras) {
				t.Errorf("Extras() = %v, want %v", r.Extras(), tt.wantExtras)
			}
			if r.Specifier().String() != tt.wantSpec {
				t.Errorf("Specifier() = %q, want %q", r.Specifier(), tt.wantSpec)
			}
			if r.Marker() != tt.wantMarker {
				t.Errorf("Marker() = %q, want %q", r.Marker(), tt.wantMarker)
			}
			if r.URL() != tt.wantURL {
				t.Errorf("URL() = %q, want %q", r.URL(), tt.wantURL)
			}
			if r.String() != tt.raw {
				t.Errorf("String() = %q, want original text", r.String())
			}
		})
	}
}

func TestParseRequirementErrors(t *testing.T) {
	invalid := []string{
		"",
		">=1.0",
		"name>=not.a.version?",
		"name;",
		"name @ ",
	}
	for _, raw := range invalid {
		if _, err := ParseRequirement(raw); err == nil {
			t.Errorf("ParseRequirement(%q) succeeded, want error", raw)
		}
	}
}

func TestSpecifierSetCheck(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		want    bool
	}{
		{">=1.0", "1.5", true},
		{">=1.0", "0.9", false},
		{">=1.0,<2.0", "2.0", false},
		{"==1.5", "1.5", true},
		{"==1.0", "2.0", false},
		{"", "0.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec+" / "+tt.version, func(t *testing.T) {
			s, err := ParseSpecifierSet(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpecifierSet(%q) returned error: %v", tt.spec, err)
			}
			if got := s.Check(MustVersion(tt.version)); got != tt.want {
				t.Errorf("Check(%s on %q) = %v, want %v", tt.version, tt.spec, got, tt.want)
			}
		})
	}
}

func TestSpecifierSetFilter(t *testing.T) {
	s, err := ParseSpecifierSet(">=1.0")
	if err != nil {
		t.Fatal(err)
	}
	candidates := []Version{MustVersion("0.5"), MustVersion("1.0"), MustVersion("1.5"), MustVersion("2.0")}
	got := s.Filter(candidates)

	want := []string{"1.0", "1.5", "2.0"}
	if len(got) != len(want) {
		t.Fatalf("Filter returned %d versions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("Filter()[%d] = %s, want %s", i, got[i], w)
		}
	}
}
