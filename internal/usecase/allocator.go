package usecase

import (
	"github.com/shopspring/decimal"

	"dirf-ecf-reconciliation/internal/domain"
)

var (
	ratePIS    = decimal.RequireFromString("0.65")
	rateCOFINS = decimal.RequireFromString("3.00")
	rateCS     = decimal.RequireFromString("1.00")

	// Combined rates used as denominators by the split codes.
	combined465 = decimal.RequireFromString("4.65")
	combined585 = decimal.RequireFromString("5.85")
	combined945 = decimal.RequireFromString("9.45")
	divisor8767 = decimal.RequireFromString("2.2")
)

type allocationRule int

const (
	ruleNone allocationRule = iota
	rulePisCofinsCs465
	rulePISOnly
	ruleCOFINSOnly
	ruleCSOnly
	ruleSplit585
	ruleSplit945
	ruleCSAndIR8767
	ruleIROnly
)

var incomeCodeRules = map[int]allocationRule{
	4085: rulePisCofinsCs465,
	5952: rulePisCofinsCs465,
	5979: rulePISOnly,
	5960: ruleCOFINSOnly,
	5987: ruleCSOnly,
	6147: ruleSplit585,
	6175: ruleSplit585,
	6190: ruleSplit945,
	8767: ruleCSAndIR8767,
	1708: ruleIROnly,
	3426: ruleIROnly,
	5273: ruleIROnly,
	5557: ruleIROnly,
	6800: ruleIROnly,
	8045: ruleIROnly,
	5706: ruleIROnly,
}

// KnownIncomeCode reports whether code has an allocation rule. Allocate maps
// unknown codes to zero components; strict callers check here first.
func KnownIncomeCode(code int) bool {
	_, ok := incomeCodeRules[code]
	return ok
}

// Allocate splits a withheld amount into PIS, COFINS, CS and IR according to
// the income code. Every component is rounded to cents on its own, so the
// Verification residual may be a cent or two away from zero.
func Allocate(code int, withheld decimal.Decimal) domain.Components {
	var c domain.Components

	switch incomeCodeRules[code] {
	case rulePisCofinsCs465:
		c.PIS = share(withheld, ratePIS, combined465)
		c.COFINS = share(withheld, rateCOFINS, combined465)
		c.CS = withheld.Sub(c.PIS.Add(c.COFINS)).Round(2)
	case rulePISOnly:
		c.PIS = withheld.Round(2)
	case ruleCOFINSOnly:
		c.COFINS = withheld.Round(2)
	case ruleCSOnly:
		c.CS = withheld.Round(2)
	case ruleSplit585:
		c.PIS = share(withheld, ratePIS, combined585)
		c.COFINS = share(withheld, rateCOFINS, combined585)
		c.CS = share(withheld, rateCS, combined585)
		c.IR = remainder(withheld, c)
	case ruleSplit945:
		c.PIS = share(withheld, ratePIS, combined945)
		c.COFINS = share(withheld, rateCOFINS, combined945)
		c.CS = share(withheld, rateCS, combined945)
		c.IR = remainder(withheld, c)
	case ruleCSAndIR8767:
		c.CS = withheld.Div(divisor8767).Round(2)
		c.IR = remainder(withheld, c)
	case ruleIROnly:
		c.IR = withheld.Round(2)
	}

	c.Verification = withheld.Sub(c.PIS.Add(c.COFINS).Add(c.CS).Add(c.IR))
	return c
}

// AllocateAll fills Components on every record in place and returns the
// number of records whose income code has no rule.
func AllocateAll(records []domain.WithholdingRecord) int {
	unknown := 0
	for i := range records {
		if !KnownIncomeCode(records[i].IncomeCode) {
			unknown++
		}
		records[i].Components = Allocate(records[i].IncomeCode, records[i].Withheld)
	}
	return unknown
}

func share(withheld, rate, combined decimal.Decimal) decimal.Decimal {
	return withheld.Mul(rate).Div(combined).Round(2)
}

func remainder(withheld decimal.Decimal, c domain.Components) decimal.Decimal {
	return withheld.Sub(c.PIS.Add(c.COFINS).Add(c.CS)).Round(2)
}
