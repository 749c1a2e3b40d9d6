package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Money(t *testing.T) {
	fm := NewFormatter("en", "VND")

	assert.Equal(t, "1.2B VND", fm.Money(1_230_000_000))
	assert.Equal(t, "45M VND", fm.Money(45_000_000))
	assert.Equal(t, "850,000 VND", fm.Money(850_000))
	assert.Equal(t, "850 VND", fm.Money(850))
	assert.Equal(t, "-3M VND", fm.Money(-3_000_000))
}

func TestFormatter_DefaultsOnBadInput(t *testing.T) {
	fm := NewFormatter("not-a-locale", "")

	assert.Equal(t, "500,000 VND", fm.Money(500_000))
}

func TestFormatter_PercentagesAndCounts(t *testing.T) {
	fm := NewFormatter("en", "VND")

	assert.Equal(t, "42%", fm.Pct(0.42))
	assert.Equal(t, "12.3%", fm.Pct1(12.34))
	assert.Equal(t, "1,250", fm.Count(1250))
	assert.Equal(t, "+4.3", fm.Signed1(4.3))
	assert.Equal(t, "-1.0", fm.Signed1(-1))
	assert.Equal(t, "+12", fm.SignedCount(12))
	assert.Equal(t, "-5", fm.SignedCount(-5))
}

func TestFormatter_Date(t *testing.T) {
	fm := NewFormatter("en", "VND")

	assert.Equal(t, "Fri 12/09", fm.Date(time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)))
}

func TestFormatter_Optionals(t *testing.T) {
	fm := NewFormatter("en", "VND")

	assert.Equal(t, Placeholder, fm.MaybeMoney(nil))
	assert.Equal(t, Placeholder, fm.MaybeCount(nil))
	assert.Equal(t, "2M VND", fm.MaybeMoney(fp(2_000_000)))
	assert.Equal(t, "7", fm.MaybeCount(fp(7)))
}
