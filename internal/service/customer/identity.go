package customer

import "strings"

// AccountKind distinguishes teachers from students. Teachers sign up with a phone number,
// students with a university roll number.
type AccountKind string

const (
	AccountStudent AccountKind = "student"
	AccountTeacher AccountKind = "teacher"
)

const teacherPrefix = "tech"

// Branches lists the branches accepted at signup, in display order.
var Branches = []string{
	"Computer Science",
	"Information Technology",
	"Electronics",
	"Mechanical",
	"Civil",
	"Electrical",
	"B.C.A",
}

var (
	fourYears = []string{"First", "Second", "Third", "Fourth"}
	twoYears  = []string{"First", "Second"}
)

// DeriveAccountKind reports AccountTeacher for names starting with "tech", ignoring case
// and surrounding whitespace.
func DeriveAccountKind(name string) AccountKind {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), teacherPrefix) {
		return AccountTeacher
	}
	return AccountStudent
}

// ValidYearOptions returns the selectable years for branch. B.C.A is a two year programme.
func ValidYearOptions(branch string) []string {
	if branch == "B.C.A" {
		return append([]string(nil), twoYears...)
	}
	return append([]string(nil), fourYears...)
}

// NormalizeYear returns year if it is valid for branch, otherwise "".
func NormalizeYear(branch, year string) string {
	for _, y := range ValidYearOptions(branch) {
		if y == year {
			return year
		}
	}
	return ""
}

// IsKnownBranch reports whether branch is one of Branches.
func IsKnownBranch(branch string) bool {
	for _, b := range Branches {
		if b == branch {
			return true
		}
	}
	return false
}
