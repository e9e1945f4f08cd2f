package typesystem

import "testing"

func TestUnionNormalization(t *testing.T) {
	tests := []struct {
		name  string
		types []Type
		want  string
	}{
		{"dedupes and sorts", []Type{Integer, Integer, Double}, "double | integer"},
		{"single collapses to scalar", []Type{String}, "string"},
		{"empty is unknown", nil, "unknown"},
		{"nested unions flatten", []Type{Union(Integer, String), Union(String, Null)}, "integer | null | string"},
		{"module handle contributes object", []Type{ModuleType{Name: "fs.file"}, Null}, "null | object"},
		{"unknown absorbs the union", []Type{Integer, Unknown, String}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Union(tt.types...)
			if got.String() != tt.want {
				t.Errorf("Union() = %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestUnionNeverNests(t *testing.T) {
	inner := Union(Integer, String)
	outer := Union(inner, Boolean)
	u, ok := outer.(UnionType)
	if !ok {
		t.Fatalf("expected UnionType, got %T", outer)
	}
	for _, m := range u.Types {
		if _, nested := Type(m).(UnionType); nested {
			t.Errorf("union contains a nested union member")
		}
	}
	if len(u.Types) != 3 {
		t.Errorf("expected 3 members, got %d", len(u.Types))
	}
}

func TestIsSubtype(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"identity", String, String, true},
		{"integer widens to double", Integer, Double, true},
		{"double does not narrow to integer", Double, Integer, false},
		{"unknown absorbs left", Unknown, String, true},
		{"unknown absorbs right", String, Unknown, true},
		{"member of union", Integer, Union(Integer, Null), true},
		{"union into scalar fails", Union(Integer, Null), Integer, false},
		{"union into superset union", Union(Integer, Null), Union(Double, Integer, Null), true},
		{"module handle is an object", ModuleType{Name: "fs.file"}, Object, true},
		{"string is not an object", String, Object, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubtype(tt.a, tt.b); got != tt.want {
				t.Errorf("IsSubtype(%s, %s) = %v, want %v", Describe(tt.a), Describe(tt.b), got, tt.want)
			}
		})
	}
}

func TestStripNull(t *testing.T) {
	if got := StripNull(Union(Object, Null)); got.String() != "object" {
		t.Errorf("StripNull(object | null) = %s, want object", got.String())
	}
	if got := StripNull(Null); got != Unknown {
		t.Errorf("StripNull(null) = %s, want unknown", got.String())
	}
	handle := ModuleType{Name: "fs.file"}
	if got := StripNull(handle); got != Type(handle) {
		t.Errorf("StripNull on a module handle must keep its identity, got %s", got.String())
	}
	if got := StripNull(NullableModule{Handle: handle}); got != Type(handle) {
		t.Errorf("StripNull on a nullable handle must recover the handle, got %s", got.String())
	}
}

func TestNullableModule(t *testing.T) {
	n := NullableModule{Handle: ModuleType{Name: "fs.file"}}
	if n.String() != "fs.file | null" {
		t.Errorf("display = %q, want fs.file | null", n.String())
	}
	if !Includes(n, Null) || !Includes(n, Object) {
		t.Errorf("nullable handle must expand to object and null")
	}
	if name, ok := HandleOf(n); !ok || name != "fs.file" {
		t.Errorf("HandleOf = %q, %v", name, ok)
	}
	if _, ok := HandleOf(Union(Object, Null)); ok {
		t.Errorf("plain unions carry no handle")
	}
}

func TestTagRoundTrip(t *testing.T) {
	for _, tag := range []string{"int", "double", "string", "bool", "array", "object", "function", "regexp"} {
		d, ok := FromTag(tag)
		if !ok {
			t.Fatalf("FromTag(%q) not recognized", tag)
		}
		if Tag(d) != tag {
			t.Errorf("Tag(FromTag(%q)) = %q", tag, Tag(d))
		}
	}
	if _, ok := FromTag("float"); ok {
		t.Errorf("FromTag must reject unknown tags")
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric(Union(Integer, Double)) {
		t.Errorf("integer | double should be numeric")
	}
	if IsNumeric(Union(Integer, String)) {
		t.Errorf("integer | string should not be numeric")
	}
}
