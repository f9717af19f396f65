package domain

import (
	"strconv"
	"strings"
)

// Case is a Czech grammatical case, numbered 1 to 7 in school order.
type Case int

const (
	CaseNominative Case = iota + 1
	CaseGenitive
	CaseDative
	CaseAccusative
	CaseVocative
	CaseLocative
	CaseInstrumental
)

var caseNames = [...]string{
	CaseNominative:   "nominative",
	CaseGenitive:     "genitive",
	CaseDative:       "dative",
	CaseAccusative:   "accusative",
	CaseVocative:     "vocative",
	CaseLocative:     "locative",
	CaseInstrumental: "instrumental",
}

var caseQuestions = [...]string{
	CaseNominative:   "kdo? co?",
	CaseGenitive:     "koho? čeho?",
	CaseDative:       "komu? čemu?",
	CaseAccusative:   "koho? co?",
	CaseVocative:     "voláme",
	CaseLocative:     "kom? čem?",
	CaseInstrumental: "kým? čím?",
}

// AllCases lists the cases in numeric order.
func AllCases() []Case {
	return []Case{
		CaseNominative, CaseGenitive, CaseDative, CaseAccusative,
		CaseVocative, CaseLocative, CaseInstrumental,
	}
}

func (c Case) IsValid() bool {
	return c >= CaseNominative && c <= CaseInstrumental
}

// Number returns the school number of the case (1..7).
func (c Case) Number() int { return int(c) }

// String returns the canonical (Latin) name of the case.
func (c Case) String() string {
	if !c.IsValid() {
		return "case(" + strconv.Itoa(int(c)) + ")"
	}
	return caseNames[c]
}

// Question returns the interrogative phrase used to identify the case.
func (c Case) Question() string {
	if !c.IsValid() {
		return ""
	}
	return caseQuestions[c]
}

// CaseFromNumber resolves a case by its number.
func CaseFromNumber(n int) (Case, error) {
	c := Case(n)
	if !c.IsValid() {
		return 0, NewInvalidValueError(ErrInvalidCase, "", strconv.Itoa(n))
	}
	return c, nil
}

// ParseCase resolves a case from its number ("4") or its name ("accusative").
// Names are matched case-insensitively.
func ParseCase(s string) (Case, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return CaseFromNumber(n)
	}
	for _, c := range AllCases() {
		if strings.EqualFold(s, caseNames[c]) {
			return c, nil
		}
	}
	return 0, NewInvalidValueError(ErrInvalidCase, "", s)
}

// Gender is the grammatical gender code of a noun as written on a card.
type Gender string

const (
	GenderMasculine       Gender = "M"
	GenderFeminine        Gender = "F"
	GenderNeuter          Gender = "N"
	GenderMasculinePlural Gender = "mM"
	GenderFemininePlural  Gender = "mF"
	GenderNeuterPlural    Gender = "mN"
)

// AllGenders lists the known gender codes.
func AllGenders() []Gender {
	return []Gender{
		GenderMasculine, GenderFeminine, GenderNeuter,
		GenderMasculinePlural, GenderFemininePlural, GenderNeuterPlural,
	}
}

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMasculine, GenderFeminine, GenderNeuter,
		GenderMasculinePlural, GenderFemininePlural, GenderNeuterPlural:
		return true
	}
	return false
}

// Article returns the marker shown in front of the noun: the demonstrative
// pronoun for singular genders and the code itself for plural ones.
func (g Gender) Article() string {
	switch g {
	case GenderMasculine:
		return "ten"
	case GenderFeminine:
		return "ta"
	case GenderNeuter:
		return "to"
	case GenderMasculinePlural, GenderFemininePlural, GenderNeuterPlural:
		return string(g)
	}
	return ""
}

// ParseGender resolves a gender from its code. Codes are case-sensitive
// because "M" and "mM" differ only by case.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.TrimSpace(s))
	if !g.IsValid() {
		return "", NewInvalidValueError(ErrInvalidGender, "", s)
	}
	return g, nil
}
