package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchSession_Defaults(t *testing.T) {
	s := NewSearchSession("Dublin", "cafe", nil, nil, 0, false)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, []string{"cafe"}, s.BusinessTypeKeywords)
	assert.Equal(t, []string{"Dublin"}, s.LocationTerms)
	require.NoError(t, s.Validate())
}

func TestNewSearchSession_ExplicitTermsKept(t *testing.T) {
	s := NewSearchSession("Dublin", "cafe",
		[]string{"coffee shop", "espresso bar"},
		[]string{"Dublin 2", "South Dublin"},
		25, true,
	)

	assert.Equal(t, []string{"coffee shop", "espresso bar"}, s.BusinessTypeKeywords)
	assert.Equal(t, []string{"Dublin 2", "South Dublin"}, s.LocationTerms)
	assert.Equal(t, 25, s.MaxResults)
	assert.True(t, s.IsPremium)
}

func TestNewSearchSession_UniqueIDs(t *testing.T) {
	a := NewSearchSession("Dublin", "cafe", nil, nil, 0, false)
	b := NewSearchSession("Dublin", "cafe", nil, nil, 0, false)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionValidate(t *testing.T) {
	assert.ErrorIs(t, (&SearchSession{BusinessTypeKeywords: []string{"cafe"}}).Validate(), ErrMissingLocation)
	assert.ErrorIs(t, (&SearchSession{Location: "Dublin"}).Validate(), ErrMissingBusinessType)
	assert.ErrorIs(t, (&SearchSession{Location: "   ", BusinessTypeKeywords: []string{"cafe"}}).Validate(), ErrMissingLocation)
}

func TestLeadHasContactGap(t *testing.T) {
	assert.True(t, Lead{}.HasContactGap())
	assert.True(t, Lead{Email: "a@b.ie"}.HasContactGap())
	assert.True(t, Lead{Phone: "01 234 5678"}.HasContactGap())
	assert.False(t, Lead{Email: "a@b.ie", Phone: "01 234 5678"}.HasContactGap())
}
