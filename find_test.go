package ecmaregex

import (
	"reflect"
	"testing"
)

func TestMatchAndMatchString(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"simple match", "hello", "hello world", true},
		{"no match", "hello", "goodbye world", false},
		{"digit match", `\d`, "age 42", true},
		{"digit no match", `\d`, "no digits here", false},
		{"alternation match", "cat|dog|bird", "I have a dog", true},
		{"alternation no match", "cat|dog|bird", "I have a fish", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern, "")
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := re.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindStringAndIndex(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	if got := re.FindString("age 42 now"); got != "42" {
		t.Fatalf("FindString() = %q, want %q", got, "42")
	}
	if got := re.FindStringIndex("age 42 now"); !reflect.DeepEqual(got, []int{4, 6}) {
		t.Fatalf("FindStringIndex() = %v, want [4 6]", got)
	}
	if got := re.FindString("no digits"); got != "" {
		t.Fatalf("FindString() = %q, want empty", got)
	}
	if got := re.FindStringIndex("no digits"); got != nil {
		t.Fatalf("FindStringIndex() = %v, want nil", got)
	}
}

func TestFindSubmatch(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)\.com`, "")
	got := re.FindStringSubmatch("contact alice@example.com today")
	want := []string{"alice@example.com", "alice", "example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindStringSubmatch() = %v, want %v", got, want)
	}
}

func TestFindSubmatchUnparticipatingGroup(t *testing.T) {
	re := MustCompile(`(a)|(b)`, "")
	got := re.FindStringSubmatch("b")
	if got == nil {
		t.Fatal("FindStringSubmatch() = nil, want a match")
	}
	if got[0] != "b" || got[1] != "" || got[2] != "b" {
		t.Fatalf("FindStringSubmatch() = %v, want [b \"\" b]", got)
	}
}

func TestFindAllString(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	got := re.FindAllString("a1 b22 c333", -1)
	want := []string{"1", "22", "333"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllString() = %v, want %v", got, want)
	}
}

func TestFindAllStringLimit(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	got := re.FindAllString("a1 b22 c333", 2)
	want := []string{"1", "22"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllString(n=2) = %v, want %v", got, want)
	}
}

func TestFindAllStringZeroLimit(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	if got := re.FindAllString("a1 b22", 0); got != nil {
		t.Fatalf("FindAllString(n=0) = %v, want nil", got)
	}
}

func TestFindAllStringNoMatch(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	if got := re.FindAllString("no digits here", -1); got != nil {
		t.Fatalf("FindAllString() = %v, want nil", got)
	}
}

func TestFindAllStringSubmatch(t *testing.T) {
	re := MustCompile(`(\w)=(\d)`, "")
	got := re.FindAllStringSubmatch("a=1 b=2 c=3", -1)
	want := [][]string{
		{"a=1", "a", "1"},
		{"b=2", "b", "2"},
		{"c=3", "c", "3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindAllStringSubmatch() = %v, want %v", got, want)
	}
}

func TestStickyOnlyMatchesAtPosition(t *testing.T) {
	re := MustCompile(`ab`, "y")
	if re.FindStringIndex("xab") != nil {
		t.Fatal("sticky match should fail when the match isn't at offset 0")
	}
	if got := re.FindStringIndex("abx"); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("FindStringIndex() = %v, want [0 2]", got)
	}
}
