package simplelicense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

func TestFormatDate(t *testing.T) {
	day := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format simplelicense.DateFormat
		locale language.Tag
		want   string
	}{
		{"year month day", simplelicense.DateFormatYMD, language.AmericanEnglish, "2024-3-5"},
		{"month year day", simplelicense.DateFormatMYD, language.AmericanEnglish, "3-2024-5"},
		{"day month year", simplelicense.DateFormatDMY, language.AmericanEnglish, "5-3-2024"},
		{"locale en-US", simplelicense.DateFormatLocale, language.AmericanEnglish, "3/5/2024"},
		{"locale en-GB", simplelicense.DateFormatLocale, language.BritishEnglish, "05/03/2024"},
		{"locale de", simplelicense.DateFormatLocale, language.German, "5.3.2024"},
		{"locale de-CH", simplelicense.DateFormatLocale, language.MustParse("de-CH"), "5.3.2024"},
		{"locale ja", simplelicense.DateFormatLocale, language.Japanese, "2024/3/5"},
		{"unsupported locale falls back", simplelicense.DateFormatLocale, language.Swahili, "3/5/2024"},
		{"empty format uses locale", "", language.French, "05/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simplelicense.FormatDate(day, tt.format, tt.locale))
		})
	}
}

func TestFormatDateTwoDigitComponents(t *testing.T) {
	day := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-12-25", simplelicense.FormatDate(day, simplelicense.DateFormatYMD, language.Und))
	assert.Equal(t, "25-12-2023", simplelicense.FormatDate(day, simplelicense.DateFormatDMY, language.Und))
}

func TestDateFormatValid(t *testing.T) {
	for _, f := range []simplelicense.DateFormat{
		simplelicense.DateFormatYMD,
		simplelicense.DateFormatMYD,
		simplelicense.DateFormatDMY,
		simplelicense.DateFormatLocale,
		"",
	} {
		assert.True(t, f.Valid(), f)
	}
	assert.False(t, simplelicense.DateFormat("dd/mm/yyyy").Valid())
}

func TestParseLocale(t *testing.T) {
	tag, err := simplelicense.ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, simplelicense.DefaultLocale, tag)

	tag, err = simplelicense.ParseLocale("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "en-GB", tag.String())

	_, err = simplelicense.ParseLocale("not a locale!")
	assert.Error(t, err)
}
