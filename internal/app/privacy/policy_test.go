package privacy

import "testing"

func TestDefaultPolicyCoversAllFields(t *testing.T) {
	policy := DefaultPolicy()

	if len(policy) != len(Fields()) {
		t.Fatalf("expected %d fields in default policy, got %d", len(Fields()), len(policy))
	}
	for _, field := range Fields() {
		level, ok := policy[field]
		if !ok {
			t.Fatalf("default policy missing field %q", field)
		}
		want := LevelPublic
		if field == FieldTimezone || field == FieldPhoneNumber {
			want = LevelPrivate
		}
		if level != want {
			t.Fatalf("default level for %q: expected %q, got %q", field, want, level)
		}
	}
}

func TestMergePolicy(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		field     Field
		want      Level
	}{
		{
			name:      "override applies",
			overrides: map[string]string{"biography": "friends"},
			field:     FieldBiography,
			want:      LevelFriends,
		},
		{
			name:      "missing key falls back to default",
			overrides: map[string]string{"biography": "friends"},
			field:     FieldMajor,
			want:      LevelPublic,
		},
		{
			name:      "private default survives empty overrides",
			overrides: nil,
			field:     FieldPhoneNumber,
			want:      LevelPrivate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			merged := MergePolicy(tc.overrides)
			if got := merged[tc.field]; got != tc.want {
				t.Fatalf("expected %q=%q, got %q", tc.field, tc.want, got)
			}
		})
	}
}

func TestMergePolicyIgnoresUnknownKeys(t *testing.T) {
	merged := MergePolicy(map[string]string{
		"favoriteColor": "friends",
		"email":         "private",
	})

	if _, ok := merged[Field("favoriteColor")]; ok {
		t.Fatalf("unknown key should not appear in merged policy")
	}
	if merged[FieldEmail] != LevelPrivate {
		t.Fatalf("known override lost during merge")
	}
	if len(merged) != len(Fields()) {
		t.Fatalf("merged policy must cover exactly the known field set")
	}
}

func TestValidatePolicyCollectsAllProblems(t *testing.T) {
	problems := ValidatePolicy(map[string]string{
		"biography":   "sometimes",
		"email":       "never",
		"major":       "public",
		"phoneNumber": "friends",
	})

	if len(problems) != 2 {
		t.Fatalf("expected 2 validation problems, got %d: %v", len(problems), problems)
	}
	if _, ok := problems["biography"]; !ok {
		t.Fatalf("expected a problem for biography")
	}
	if _, ok := problems["email"]; !ok {
		t.Fatalf("expected a problem for email")
	}
}

func TestValidatePolicyEmptyIsValid(t *testing.T) {
	if problems := ValidatePolicy(nil); len(problems) != 0 {
		t.Fatalf("expected no problems for empty overrides, got %v", problems)
	}
}
