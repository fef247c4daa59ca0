package payload

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/resourceload/internal/csvsource"
	"github.com/JonMunkholm/resourceload/internal/schema"
)

func marshal(t *testing.T, f *Fields) string {
	t.Helper()
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

// ----------------------------------------------------------------------------
// BuildGeneric Tests
// ----------------------------------------------------------------------------

func TestBuildGeneric(t *testing.T) {
	columns := []string{"resourceId", "displayName", "uniqueId", "externalUrl", "team", "region"}

	tests := []struct {
		name       string
		rec        csvsource.Record
		overrideID string
		want       string
		wantErr    error
	}{
		{
			name: "all fields present",
			rec: csvsource.Record{
				"resourceId":  "r1",
				"displayName": "Widget",
				"uniqueId":    "u1",
				"externalUrl": "https://abc.com",
				"team":        "core",
				"region":      "eu",
			},
			want: `{"resourceId":"r1","resources":[{"displayName":"Widget","uniqueId":"u1","externalUrl":"https://abc.com","customProperties":{"team":"core","region":"eu"}}]}`,
		},
		{
			name: "empty values never leak",
			rec: csvsource.Record{
				"resourceId":  "r1",
				"displayName": "",
				"uniqueId":    "u1",
				"externalUrl": "",
				"team":        "",
				"region":      "",
			},
			want: `{"resourceId":"r1","resources":[{"uniqueId":"u1","customProperties":{}}]}`,
		},
		{
			name: "override wins over column",
			rec: csvsource.Record{
				"resourceId": "from-csv",
				"uniqueId":   "u1",
			},
			overrideID: "from-flag",
			want:       `{"resourceId":"from-flag","resources":[{"uniqueId":"u1","customProperties":{}}]}`,
		},
		{
			name: "empty resourceId column is accepted",
			rec: csvsource.Record{
				"resourceId": "",
				"uniqueId":   "u1",
			},
			want: `{"resourceId":"","resources":[{"uniqueId":"u1","customProperties":{}}]}`,
		},
		{
			name:    "missing resourceId column fails",
			rec:     csvsource.Record{"uniqueId": "u1"},
			wantErr: ErrMissingResourceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildGeneric(tt.rec, columns, tt.overrideID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildGeneric error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildGeneric unexpected error: %v", err)
			}
			if s := marshal(t, got); s != tt.want {
				t.Errorf("BuildGeneric =\n  %s\nwant\n  %s", s, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// BuildTyped Tests
// ----------------------------------------------------------------------------

func TestBuildTyped(t *testing.T) {
	columns := []string{"resourceId", "mfaEnabled", "mfaMethods", "email", "settings"}

	tests := []struct {
		name       string
		rec        csvsource.Record
		overrideID string
		want       string
		wantErr    error
	}{
		{
			name: "full coercion",
			rec: csvsource.Record{
				"resourceId": "r1",
				"mfaEnabled": "Yes",
				"mfaMethods": `["PUSH_PROMPT","SMS"]`,
				"email":      "john.doe@test.com",
				"settings":   `{"a":1}`,
			},
			want: `{"resources":[{"mfaEnabled":true,"mfaMethods":["PUSH_PROMPT","SMS"],"email":"john.doe@test.com","settings":{"a":1}}],"resourceId":"r1"}`,
		},
		{
			name: "comma separated methods",
			rec: csvsource.Record{
				"resourceId": "r1",
				"mfaMethods": "PUSH_PROMPT,SMS",
			},
			want: `{"resources":[{"mfaMethods":["PUSH_PROMPT","SMS"]}],"resourceId":"r1"}`,
		},
		{
			name: "single method wrapped",
			rec: csvsource.Record{
				"resourceId": "r1",
				"mfaMethods": "PUSH_PROMPT",
			},
			want: `{"resources":[{"mfaMethods":["PUSH_PROMPT"]}],"resourceId":"r1"}`,
		},
		{
			name: "mfaEnabled zero is false",
			rec: csvsource.Record{
				"resourceId": "r1",
				"mfaEnabled": "0",
			},
			want: `{"resources":[{"mfaEnabled":false}],"resourceId":"r1"}`,
		},
		{
			name: "generic true becomes boolean",
			rec: csvsource.Record{
				"resourceId": "r1",
				"email":      "True",
			},
			want: `{"resources":[{"email":true}],"resourceId":"r1"}`,
		},
		{
			name: "empty values skipped",
			rec: csvsource.Record{
				"resourceId": "r1",
				"mfaEnabled": "",
				"email":      "a@b.com",
			},
			want: `{"resources":[{"email":"a@b.com"}],"resourceId":"r1"}`,
		},
		{
			name: "override wins over column",
			rec: csvsource.Record{
				"resourceId": "from-csv",
			},
			overrideID: "from-flag",
			want:       `{"resources":[{}],"resourceId":"from-flag"}`,
		},
		{
			name:    "empty resourceId rejected",
			rec:     csvsource.Record{"resourceId": "", "email": "a@b.com"},
			wantErr: ErrMissingResourceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildTyped(tt.rec, columns, tt.overrideID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildTyped error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildTyped unexpected error: %v", err)
			}
			if s := marshal(t, got); s != tt.want {
				t.Errorf("BuildTyped =\n  %s\nwant\n  %s", s, tt.want)
			}
		})
	}
}

func TestBuildTypedInvalidBoolean(t *testing.T) {
	rec := csvsource.Record{"resourceId": "r1", "mfaEnabled": "maybe"}
	_, err := BuildTyped(rec, []string{"resourceId", "mfaEnabled"}, "")
	if err == nil {
		t.Fatal("BuildTyped accepted an invalid boolean")
	}
	var invalid *schema.InvalidBoolError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *schema.InvalidBoolError", err)
	}
	if !strings.Contains(err.Error(), "maybe") {
		t.Errorf("error %q does not name the offending value", err)
	}
}

// Building the same record twice must yield byte-identical JSON.
func TestBuildIdempotence(t *testing.T) {
	columns := []string{"resourceId", "displayName", "team", "mfaMethods"}
	rec := csvsource.Record{
		"resourceId":  "r1",
		"displayName": "Widget",
		"team":        "core",
		"mfaMethods":  "SMS,PUSH_PROMPT",
	}

	for name, build := range map[string]BuildFunc{
		"generic": BuildGeneric,
		"typed":   BuildTyped,
	} {
		t.Run(name, func(t *testing.T) {
			first, err := build(rec, columns, "")
			if err != nil {
				t.Fatalf("first build: %v", err)
			}
			second, err := build(rec, columns, "")
			if err != nil {
				t.Fatalf("second build: %v", err)
			}
			if a, b := marshal(t, first), marshal(t, second); a != b {
				t.Errorf("builds differ:\n  %s\n  %s", a, b)
			}
		})
	}
}

// resources[0] field order must mirror the CSV column order.
func TestBuildTypedColumnOrder(t *testing.T) {
	columns := []string{"zeta", "resourceId", "alpha", "mfaEnabled"}
	rec := csvsource.Record{
		"zeta":       "z",
		"resourceId": "r1",
		"alpha":      "a",
		"mfaEnabled": "no",
	}

	got, err := BuildTyped(rec, columns, "")
	if err != nil {
		t.Fatalf("BuildTyped: %v", err)
	}
	want := `{"resources":[{"zeta":"z","alpha":"a","mfaEnabled":false}],"resourceId":"r1"}`
	if s := marshal(t, got); s != want {
		t.Errorf("BuildTyped =\n  %s\nwant\n  %s", s, want)
	}
}
