package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

func testScorer() *Scorer {
	return New(config.ScorerConfig{
		CountryToken: "ireland",
		NearbyAreas: map[string][]string{
			"dublin": {"dun laoghaire", "swords", "blackrock"},
		},
		SubAreas: map[string][]string{
			"dublin": {"temple bar", "ranelagh"},
		},
	})
}

func fullLead() model.Lead {
	return model.Lead{
		Name:    "Joe's Cafe",
		Email:   "info@joescafe.ie",
		Phone:   "+353 1 234 5678",
		Website: "https://joescafe.ie",
		Address: "12 Main Street, Dublin",
	}
}

func TestScore_CompleteLeadInCity(t *testing.T) {
	s := testScorer()
	report := s.Score(fullLead(), "Dublin")

	assert.Equal(t, 100, report.ContactCompleteness)
	assert.GreaterOrEqual(t, report.LocationRelevance, 80)
	assert.Equal(t, model.QualityExcellent, report.Category)
	assert.NotEmpty(t, report.Reasons)
}

func TestScore_EmptyLeadOutsideCity(t *testing.T) {
	s := testScorer()
	lead := model.Lead{
		Name:    "Mystery Shop",
		Address: "99 Nowhere Lane, Faraway Town",
	}
	report := s.Score(lead, "Dublin")

	assert.LessOrEqual(t, report.Score, 20)
	assert.Equal(t, model.QualityPoor, report.Category)
}

func TestScore_BoundsAndCategories(t *testing.T) {
	s := testScorer()
	leads := []model.Lead{
		{},
		fullLead(),
		{Name: "x", Email: "a@gmail.com"},
		{Name: "y", Phone: "garbage", Website: ":bad:url", Address: "short"},
	}
	for _, l := range leads {
		report := s.Score(l, "Dublin")
		assert.GreaterOrEqual(t, report.Score, 0)
		assert.LessOrEqual(t, report.Score, 100)
		switch {
		case report.Score >= 80:
			assert.Equal(t, model.QualityExcellent, report.Category)
		case report.Score >= 50:
			assert.Equal(t, model.QualityOkay, report.Category)
		default:
			assert.Equal(t, model.QualityPoor, report.Category)
		}
	}
}

// Adding a previously-missing field never decreases the composite score.
func TestScore_Monotonicity(t *testing.T) {
	s := testScorer()
	base := model.Lead{Name: "Joe's Cafe"}

	additions := []func(*model.Lead){
		func(l *model.Lead) { l.Email = "info@joescafe.ie" },
		func(l *model.Lead) { l.Phone = "+353 1 234 5678" },
		func(l *model.Lead) { l.Website = "https://joescafe.ie" },
		func(l *model.Lead) { l.Address = "12 Main Street, Dublin" },
		func(l *model.Lead) { l.Instagram = "joescafe" },
	}

	prev := s.Score(base, "Dublin").Score
	for _, add := range additions {
		add(&base)
		next := s.Score(base, "Dublin").Score
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
}

func TestScore_GenericDomainNoBonus(t *testing.T) {
	s := testScorer()
	generic := s.Score(model.Lead{Email: "joe@gmail.com"}, "Dublin")
	business := s.Score(model.Lead{Email: "joe@joescafe.ie"}, "Dublin")
	assert.Equal(t, generic.ContactCompleteness+5, business.ContactCompleteness)
}

func TestScore_FormattedPhoneBonus(t *testing.T) {
	s := testScorer()
	loose := s.Score(model.Lead{Phone: "0123456789"}, "Dublin")
	formatted := s.Score(model.Lead{Phone: "(012) 345-6789"}, "Dublin")
	assert.Equal(t, loose.ContactCompleteness+5, formatted.ContactCompleteness)
}

func TestScore_HTTPSBonus(t *testing.T) {
	s := testScorer()
	plain := s.Score(model.Lead{Website: "http://joescafe.ie"}, "Dublin")
	secure := s.Score(model.Lead{Website: "https://joescafe.ie"}, "Dublin")
	assert.Equal(t, plain.ContactCompleteness+3, secure.ContactCompleteness)
}

func TestScore_NoAddressFixedRelevance(t *testing.T) {
	s := testScorer()
	report := s.Score(model.Lead{Name: "No Address"}, "Dublin")
	assert.Equal(t, 30, report.LocationRelevance)
}

func TestScore_SubAreaBonus(t *testing.T) {
	s := testScorer()
	city := s.Score(model.Lead{Address: "12 Quay Street, Dublin"}, "Dublin")
	sub := s.Score(model.Lead{Address: "4 Temple Bar, Dublin"}, "Dublin")
	assert.Equal(t, city.LocationRelevance+20, sub.LocationRelevance)
}

func TestScore_NearbyAreaPartialCredit(t *testing.T) {
	s := testScorer()
	nearby := s.Score(model.Lead{Address: "1 Marine Road, Dun Laoghaire"}, "Dublin")
	outside := s.Score(model.Lead{Address: "1 Far Road, Elsewhere"}, "Dublin")

	assert.Equal(t, 60, nearby.LocationRelevance)
	assert.Equal(t, 30, outside.LocationRelevance)
}

func TestScore_CountryBonus(t *testing.T) {
	s := testScorer()
	report := s.Score(model.Lead{Address: "12 Main Street, Dublin, Ireland"}, "Dublin")
	assert.Equal(t, 90, report.LocationRelevance)
}

func TestScore_Deterministic(t *testing.T) {
	s := testScorer()
	a := s.Score(fullLead(), "Dublin")
	b := s.Score(fullLead(), "Dublin")
	assert.Equal(t, a, b)
}
