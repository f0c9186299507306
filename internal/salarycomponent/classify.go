package salarycomponent

import (
	"strings"
	"unicode"
)

// Component roles are inferred from code and name, case-insensitively.
//
// Statutory deduction codes must end in SuffixEmployee or SuffixEmployer;
// anything else is classified by the looser name heuristics below and may
// land on the wrong side.
const (
	SuffixEmployee = "_EMP"
	SuffixEmployer = "_EMPR"
)

var employeeSideCodes = map[string]bool{
	StatutoryPF:       true,
	StatutoryESI:      true,
	StatutoryPT:       true,
	StatutoryGratuity: true,
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasToken(s, token string) bool {
	for _, t := range tokens(s) {
		if t == token {
			return true
		}
	}
	return false
}

func IsBasic(code, name string) bool {
	return normalize(code) == CodeBasic || strings.Contains(normalize(name), "BASIC")
}

// IsDA matches DA as a whole token so codes like STANDARD_DEDUCTION do not qualify.
func IsDA(code, name string) bool {
	c, n := normalize(code), normalize(name)
	if c == "DA" || hasToken(c, "DA") || hasToken(n, "DA") {
		return true
	}
	return strings.Contains(c, "DEARNESS") || strings.Contains(n, "DEARNESS")
}

func IsSpecialAllowance(code, name string) bool {
	if c := normalize(code); c != "" {
		return strings.Contains(c, "SPECIAL")
	}
	return strings.Contains(normalize(name), "SPECIAL")
}

func IsEmployerSide(code, name string) bool {
	c, n := normalize(code), normalize(name)
	return strings.HasSuffix(c, SuffixEmployer) ||
		strings.Contains(c, "EMPR") ||
		strings.Contains(n, "EMPLOYER")
}

func IsEmployeeSide(code, name string) bool {
	if IsEmployerSide(code, name) {
		return false
	}
	c, n := normalize(code), normalize(name)
	return strings.HasSuffix(c, SuffixEmployee) ||
		strings.Contains(c, "EMP") ||
		strings.Contains(n, "EMPLOYEE") ||
		employeeSideCodes[c]
}

func (c SalaryComponent) IsBasic() bool            { return IsBasic(c.Code, c.Name) }
func (c SalaryComponent) IsDA() bool               { return IsDA(c.Code, c.Name) }
func (c SalaryComponent) IsSpecialAllowance() bool { return IsSpecialAllowance(c.Code, c.Name) }
func (c SalaryComponent) IsEmployerSide() bool     { return IsEmployerSide(c.Code, c.Name) }
func (c SalaryComponent) IsEmployeeSide() bool     { return IsEmployeeSide(c.Code, c.Name) }

// IsReservedCode reports codes that only the system may provision. Any code
// the classifier would read as special allowance is reserved too.
func IsReservedCode(code string) bool {
	c := normalize(code)
	if c == CodeBasic || employeeSideCodes[c] || IsSpecialAllowance(c, "") {
		return true
	}
	return strings.HasSuffix(c, SuffixEmployee) || strings.HasSuffix(c, SuffixEmployer)
}

func NormalizeCode(code string) string {
	return normalize(code)
}
