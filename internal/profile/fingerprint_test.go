package profile

import "testing"

func TestFingerprintStableUnderSkillPermutation(t *testing.T) {
	a := Profile{
		Skills:        []string{"Python", "SQL", "Docker"},
		Experience:    "3 years",
		LastJobTitles: []string{"Analyst", "Data Engineer"},
		Location:      "Amsterdam",
	}
	b := Profile{
		Skills:        []string{"SQL", "Docker", "Python"},
		Experience:    "3 years",
		LastJobTitles: []string{"Data Engineer", "Analyst"},
		Location:      "Amsterdam",
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("expected identical fingerprints for reordered lists")
	}
}

func TestFingerprintIgnoresCaseAndWhitespace(t *testing.T) {
	a := Profile{Skills: []string{"  Python ", "sql"}, Experience: "Senior"}
	b := Profile{Skills: []string{"python", "SQL"}, Experience: " senior "}
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("expected normalization to make fingerprints equal")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Profile{
		Skills:        []string{"Python", "SQL"},
		Experience:    "3 years",
		LastJobTitles: []string{"Analyst"},
	}
	variants := []Profile{
		{Skills: []string{"Python", "SQL", "Go"}, Experience: "3 years", LastJobTitles: []string{"Analyst"}},
		{Skills: []string{"Python", "SQL"}, Experience: "5 years", LastJobTitles: []string{"Analyst"}},
		{Skills: []string{"Python", "SQL"}, Experience: "3 years", LastJobTitles: []string{"Engineer"}},
		{Skills: []string{"Python", "SQL"}, Experience: "3 years", LastJobTitles: []string{"Analyst"}, Location: "Berlin"},
	}
	seen := map[string]int{Fingerprint(base): -1}
	for i, v := range variants {
		fp := Fingerprint(v)
		if prev, ok := seen[fp]; ok {
			t.Fatalf("variant %d collides with %d", i, prev)
		}
		seen[fp] = i
	}
}

func TestFingerprintPure(t *testing.T) {
	p := Profile{Skills: []string{"Go"}, Experience: "junior"}
	if Fingerprint(p) != Fingerprint(p) {
		t.Fatalf("expected stable fingerprint across calls")
	}
}
