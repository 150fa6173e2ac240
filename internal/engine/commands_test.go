package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/wealth-quest/internal/models"
)

func TestRepayDebtPaysOff(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Debts = []models.Debt{{ID: "loan", Name: "Loan", Principal: 100, InterestRate: 0.12, MinPayment: 150}}
	s.NetWorth = s.ComputeNetWorth()

	next := e.RepayDebt(s, "loan", 1000)

	if next.Cash != 900 {
		t.Errorf("Expected cash 900, got %v", next.Cash)
	}
	if next.Debts[0].Principal != 0 {
		t.Errorf("Expected principal 0, got %v", next.Debts[0].Principal)
	}
	l := next.History.Logs[0]
	if l.Type != models.LogInfo || l.Message != "🎉 Paid Off Loan!" || *l.Amount != -100 {
		t.Errorf("unexpected payoff log: %+v", l)
	}
	if next.NetWorth != 900 {
		t.Errorf("Expected net worth 900, got %v", next.NetWorth)
	}
}

func TestRepayDebtPartial(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Cash = 300
	s.Debts = []models.Debt{{ID: "student_loan", Name: "Student Loan", Principal: 15000, InterestRate: 0.05}}

	next := e.RepayDebt(s, "student_loan", 500)

	if next.Cash != 0 || next.Debts[0].Principal != 14700 {
		t.Errorf("Expected payment capped at cash, got cash %v principal %v", next.Cash, next.Debts[0].Principal)
	}
	l := next.History.Logs[0]
	if l.Type != models.LogExpense || l.Message != "Extra Payment: Student Loan ($300)" {
		t.Errorf("unexpected log: %+v", l)
	}
}

func TestRepayDebtSnapsDust(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Debts = []models.Debt{{ID: "loan", Name: "Loan", Principal: 50.005}}
	next := e.RepayDebt(s, "loan", 50)
	if next.Debts[0].Principal != 0 {
		t.Errorf("Expected dust snapped to 0, got %v", next.Debts[0].Principal)
	}
	if next.History.Logs[0].Type != models.LogInfo {
		t.Errorf("Expected payoff log, got %+v", next.History.Logs[0])
	}
}

func TestPromotionGate(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()

	s.FinancialIQ = 99
	if next := e.PromoteJob(s, 1); next.Income.Job.ID != "barista" {
		t.Errorf("Expected promotion to be refused at 99 IQ")
	}

	s.FinancialIQ = 100
	next := e.PromoteJob(s, 1)
	if next.Income.Job.ID != "intern" {
		t.Errorf("Expected intern, got %s", next.Income.Job.ID)
	}
	l := next.History.Logs[0]
	if l.Type != models.LogEarning || l.Message != "Promoted to Office Intern!" {
		t.Errorf("unexpected promotion log: %+v", l)
	}
	if next.FinancialIQ != 100 {
		t.Errorf("promotion must not spend IQ")
	}
}

func TestPromoteSkipsRungs(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.FinancialIQ = 9000
	if next := e.PromoteJob(s, 5); next.Income.Job.ID != "cto" {
		t.Errorf("Expected cto, got %s", next.Income.Job.ID)
	}
	s.Income.Job = e.Catalog().Jobs[5]
	if next := e.PromoteJob(s, 0); next.Income.Job.ID != "barista" {
		t.Errorf("Expected demotion by index to be accepted, got %s", next.Income.Job.ID)
	}
}

func TestBuyAssetRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Assets = []models.Asset{{ID: "index_fund", Name: "Global Index Fund", Value: 100}}
	s.NetWorth = s.ComputeNetWorth()

	once := e.BuyAsset(s, "index_fund", 50)
	if once.Assets[0].Quantity != 0.5 {
		t.Errorf("Expected 0.5 units, got %v", once.Assets[0].Quantity)
	}
	if once.Cash != 950 {
		t.Errorf("Expected cash 950, got %v", once.Cash)
	}
	if once.NetWorth != s.NetWorth {
		t.Errorf("Expected unchanged net worth %v, got %v", s.NetWorth, once.NetWorth)
	}
	l := once.History.Logs[0]
	if l.Type != models.LogInfo || l.Message != "Bought Global Index Fund" || *l.Amount != -50 {
		t.Errorf("unexpected purchase log: %+v", l)
	}

	twice := e.BuyAsset(once, "index_fund", 50)
	if twice.Assets[0].Quantity != 1 || twice.Cash != 900 {
		t.Errorf("Expected 1 unit and 900 cash, got %v and %v", twice.Assets[0].Quantity, twice.Cash)
	}
	if once.Assets[0].Quantity != 0.5 {
		t.Errorf("BuyAsset modified its input")
	}
}

func TestLoanStacking(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()

	s1 := e.TakeLoan(s, "personal_loan", "Personal Loan", 1000, 0.12)
	s2 := e.TakeLoan(s1, "personal_loan", "Personal Loan", 500, 0.30)

	if len(s2.Debts) != 1 {
		t.Fatalf("Expected one debt, got %d", len(s2.Debts))
	}
	d := s2.Debts[0]
	if d.Principal != 1500 || d.InterestRate != 0.12 || d.MinPayment != 0 {
		t.Errorf("unexpected stacked debt: %+v", d)
	}
	if s2.Cash != 2500 {
		t.Errorf("Expected cash 2500, got %v", s2.Cash)
	}
	if s2.NetWorth != s.NetWorth {
		t.Errorf("Expected neutral net worth %v, got %v", s.NetWorth, s2.NetWorth)
	}
	l := s2.History.Logs[0]
	if l.Type != models.LogEarning || l.Message != "Borrowed: Personal Loan (+$500)" || *l.Amount != 500 {
		t.Errorf("unexpected loan log: %+v", l)
	}
}

func TestTakeLoanOfferCapsAmount(t *testing.T) {
	e := newTestEngine(t)
	next := e.TakeLoanOffer(baseState(), "shark_loan", 10000)
	if len(next.Debts) != 1 || next.Debts[0].Principal != 2000 || next.Debts[0].InterestRate != 0.5 {
		t.Errorf("unexpected shark loan: %+v", next.Debts)
	}
}

func TestLearnSkill(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()

	s.FinancialIQ = 499
	if next := e.LearnSkill(s, "budgeting"); next.Skills["budgeting"] != 0 {
		t.Errorf("Expected skill refused at 499 IQ")
	}

	s.FinancialIQ = 600
	next := e.LearnSkill(s, "budgeting")
	if next.Skills["budgeting"] != 1 || next.FinancialIQ != 100 {
		t.Errorf("Expected level 1 and 100 IQ left, got %d and %d", next.Skills["budgeting"], next.FinancialIQ)
	}
	if msg := next.History.Logs[0].Message; msg != "Learned Budget Master (Lv 1)" {
		t.Errorf("unexpected log %q", msg)
	}

	s.Skills["budgeting"] = 5
	s.FinancialIQ = 10000
	if next := e.LearnSkill(s, "budgeting"); next.FinancialIQ != 10000 {
		t.Errorf("Expected maxed skill to be refused")
	}
}

func TestRejectedCommandsReturnInput(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Assets = []models.Asset{{ID: "index_fund", Value: 100}}
	s.Debts = []models.Debt{
		{ID: "student_loan", Principal: 500},
		{ID: "paid", Principal: 0},
	}
	s.NetWorth = s.ComputeNetWorth()
	broke := s.Clone()
	broke.Cash = 0

	cases := map[string]models.GameState{
		"buy unknown":      e.BuyAsset(s, "nope", 10),
		"buy too much":     e.BuyAsset(s, "index_fund", 1000.01),
		"buy zero":         e.BuyAsset(s, "index_fund", 0),
		"promote locked":   e.PromoteJob(s, 1),
		"promote range":    e.PromoteJob(s, 42),
		"promote negative": e.PromoteJob(s, -1),
		"repay unknown":    e.RepayDebt(s, "nope", 10),
		"repay paid":       e.RepayDebt(s, "paid", 10),
		"repay negative":   e.RepayDebt(s, "student_loan", -10),
		"loan zero":        e.TakeLoan(s, "x", "X", 0, 0.1),
		"loan unknown":     e.TakeLoanOffer(s, "nope", 100),
		"skill unknown":    e.LearnSkill(s, "nope"),
		"buy NaN":          e.BuyAsset(s, "index_fund", math.NaN()),
		"buy Inf":          e.BuyAsset(s, "index_fund", math.Inf(1)),
		"repay NaN":        e.RepayDebt(s, "student_loan", math.NaN()),
		"repay Inf":        e.RepayDebt(s, "student_loan", math.Inf(1)),
		"loan NaN":         e.TakeLoan(s, "x", "X", math.NaN(), 0.1),
		"loan Inf":         e.TakeLoan(s, "x", "X", math.Inf(1), 0.1),
		"loan NaN rate":    e.TakeLoan(s, "x", "X", 100, math.NaN()),
		"offer NaN":        e.TakeLoanOffer(s, "personal_loan", math.NaN()),
	}
	for name, got := range cases {
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("%s: state changed (-want +got):\n%s", name, diff)
		}
	}
	if diff := cmp.Diff(broke, e.RepayDebt(broke, "student_loan", 10)); diff != "" {
		t.Errorf("repay without cash: state changed (-want +got):\n%s", diff)
	}
}

// TestInvariantsUnderRandomPlay drives the engine with random commands and
// checks the bookkeeping invariants after every step.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	e := newTestEngine(t)
	e.rng = rand.New(rand.NewPCG(7, 11))
	player := rand.New(rand.NewPCG(1, 2))

	s := e.NewGame()
	months := 0
	check := func(op string, s models.GameState) {
		t.Helper()
		if !near(s.NetWorth, s.ComputeNetWorth()) {
			t.Fatalf("%s: net worth %v != %v", op, s.NetWorth, s.ComputeNetWorth())
		}
		if len(s.History.Logs) > MaxLogs {
			t.Fatalf("%s: %d logs", op, len(s.History.Logs))
		}
		if len(s.History.NetWorth) != months+1 {
			t.Fatalf("%s: expected %d history points, got %d", op, months+1, len(s.History.NetWorth))
		}
		for i := 1; i < len(s.History.NetWorth); i++ {
			if s.History.NetWorth[i].Month <= s.History.NetWorth[i-1].Month {
				t.Fatalf("%s: history not increasing at %d", op, i)
			}
		}
		for _, d := range s.Debts {
			if d.Principal < 0 || (d.Principal > 0 && d.Principal < 0.01) {
				t.Fatalf("%s: bad principal %v", op, d.Principal)
			}
		}
		if s.Happiness < 0 || s.Happiness > 100 {
			t.Fatalf("%s: happiness %d", op, s.Happiness)
		}
	}

	for step := 0; step < 600; step++ {
		var op string
		switch player.IntN(6) {
		case 0:
			op = "buy"
			a := s.Assets[player.IntN(len(s.Assets))]
			s = e.BuyAsset(s, a.ID, player.Float64()*s.Cash)
		case 1:
			op = "repay"
			if len(s.Debts) > 0 {
				d := s.Debts[player.IntN(len(s.Debts))]
				s = e.RepayDebt(s, d.ID, player.Float64()*2000)
			}
		case 2:
			op = "loan"
			l := e.Catalog().Loans[player.IntN(len(e.Catalog().Loans))]
			s = e.TakeLoanOffer(s, l.ID, 1+player.Float64()*l.MaxAmount)
		case 3:
			op = "promote"
			s = e.PromoteJob(s, player.IntN(len(e.Catalog().Jobs)))
		case 4:
			op = "skill"
			sk := e.Catalog().Skills[player.IntN(len(e.Catalog().Skills))]
			s = e.LearnSkill(s, sk.ID)
		default:
			op = "advance"
			iq := s.FinancialIQ
			s = e.AdvanceMonth(s)
			months++
			if s.FinancialIQ < iq {
				t.Fatalf("advance lowered IQ from %d to %d", iq, s.FinancialIQ)
			}
		}
		check(op, s)
	}
}

func TestLogIsBounded(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Cash = 1e6
	s.Assets = []models.Asset{{ID: "bond_fund", Name: "Safe Gov Bonds", Value: 100}}

	for i := 0; i < MaxLogs+10; i++ {
		s = e.BuyAsset(s, "bond_fund", 1)
	}
	if len(s.History.Logs) != MaxLogs {
		t.Fatalf("Expected %d logs, got %d", MaxLogs, len(s.History.Logs))
	}
	if s.History.Logs[0].ID != "log-60" || s.History.Logs[MaxLogs-1].ID != "log-11" {
		t.Errorf("Expected newest first and oldest dropped, got %s .. %s", s.History.Logs[0].ID, s.History.Logs[MaxLogs-1].ID)
	}
}

func TestProject(t *testing.T) {
	e := newTestEngine(t)
	s := baseState()
	s.Skills = map[string]int{"negotiation": 1}
	s.Debts = []models.Debt{
		{ID: "student_loan", Principal: 15000, InterestRate: 0.05, MinPayment: 150},
		{ID: "paid", Principal: 0, MinPayment: 50},
	}
	cf := e.Project(s)
	if !near(cf.Income, 2400*1.05/12) {
		t.Errorf("Expected income %v, got %v", 2400*1.05/12, cf.Income)
	}
	if cf.Living != 1700 || !near(cf.DebtPayments, 375) {
		t.Errorf("unexpected outflows: %+v", cf)
	}
	if !near(cf.Net, cf.Income-1700-375) {
		t.Errorf("unexpected net: %+v", cf)
	}
}
