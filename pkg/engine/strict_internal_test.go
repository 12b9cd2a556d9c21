package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Scanner-level cases for constructs the rendering tests do not need to
// execute.
func TestMissingIdents(t *testing.T) {
	known := func(keys ...string) func(string) bool {
		set := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			set[key] = struct{}{}
		}
		return func(ident string) bool {
			_, ok := set[ident]
			return ok
		}
	}

	cases := []struct {
		name  string
		src   string
		known func(string) bool
		want  []string
	}{
		{
			name:  "is defined probe guards later reads",
			src:   "{% if EXTRA is defined %}{{ EXTRA }}{% endif %}",
			known: known(),
			want:  nil,
		},
		{
			name:  "is defined probe alone passes",
			src:   "{% if EXTRA is defined %}yes{% endif %}",
			known: known(),
			want:  nil,
		},
		{
			name:  "unprobed read is still reported",
			src:   "{% if OTHER is defined %}yes{% endif %}{{ EXTRA }}",
			known: known(),
			want:  []string{"EXTRA"},
		},
		{
			name:  "default filter tolerates unset",
			src:   `{{ EXTRA|default:"x" }}`,
			known: known(),
			want:  nil,
		},
		{
			name:  "import alias is bound",
			src:   `{% import "forms.html" as forms %}{{ forms }}`,
			known: known(),
			want:  nil,
		},
		{
			name:  "macro parameters are bound",
			src:   "{% macro input(name, value) %}{{ name }}={{ value }}{% endmacro %}",
			known: known(),
			want:  nil,
		},
		{
			name:  "with binds its target",
			src:   "{% with alias = HOST %}{{ alias }}{% endwith %}",
			known: known("HOST"),
			want:  nil,
		},
		{
			name:  "verbatim content is ignored",
			src:   "{% verbatim %}{{ NOT_A_KEY }}{% endverbatim %}{{ HOST }}",
			known: known("HOST"),
			want:  nil,
		},
		{
			name:  "multiple missing in order of appearance",
			src:   "{{ BETA }}{{ ALPHA }}{{ BETA }}",
			known: known(),
			want:  []string{"BETA", "ALPHA"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := missingIdents(tc.src, tc.known)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("missing idents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
