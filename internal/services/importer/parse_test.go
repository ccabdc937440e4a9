package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

func testRefs() Refs {
	return NewRefs(
		[]models.Product{{ID: 1, Name: "Methanol"}, {ID: 2, Name: "Ammonia"}},
		[]models.Company{
			{ID: 10, Name: "Azot", Location: "Novomoskovsk"},
			{ID: 11, Name: "Metafrax", Location: "Gubakha"},
		},
		[]models.Country{{ID: 7, Name: "Russia"}},
	)
}

func TestDecodeQuarter(t *testing.T) {
	tests := []struct {
		label  string
		want   models.Quarter
		wantOK bool
	}{
		{"Q1-98", models.Quarter{Code: "Q1", Year: 1998}, true},
		{"Q4-97", models.Quarter{Code: "Q4", Year: 1997}, true},
		{"Q2-99", models.Quarter{Code: "Q2", Year: 1999}, true},
		{"Q1-23", models.Quarter{Code: "Q1", Year: 2023}, true},
		{"Q3-00", models.Quarter{Code: "Q3", Year: 2000}, true},
		{"Q3-96", models.Quarter{Code: "Q3", Year: 2096}, true},
		{" Q2-05 ", models.Quarter{Code: "Q2", Year: 2005}, true},
		{"", models.Quarter{}, false},
		{"Q1", models.Quarter{}, false},
		{"Q1-xx", models.Quarter{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := DecodeQuarter(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, 12.5, Amount("12.5"))
	assert.Equal(t, 0.0, Amount(""))
	assert.Equal(t, 0.0, Amount("n/a"))
	assert.Equal(t, 300.0, Amount(" 300 "))
}

func TestParseProducts(t *testing.T) {
	rows := [][]string{
		{"Product", "Group"},
		{"Methanol", "A"},
		{"", "B"},
		{"Product", "Group"},
		{"Ammonia"},
	}
	got, ok := ParseProducts(rows)
	require.True(t, ok)
	assert.Equal(t, []models.Product{
		{ID: 1, Name: "Methanol", Group: "A"},
		{ID: 2, Name: "Ammonia", Group: "z"},
	}, got)

	_, ok = ParseProducts([][]string{{"Name", "Group"}})
	assert.False(t, ok)
}

func TestParseCompanies(t *testing.T) {
	rows := [][]string{
		{"Producer", "Location", "Country"},
		{"Azot", "Novomoskovsk", "Russia"},
		{"Grupa Azoty", "Tarnow", "Poland"},
		{""},
	}
	got, ok := ParseCompanies(rows, testRefs())
	require.True(t, ok)
	assert.Equal(t, []models.Company{
		{ID: 1, Name: "Azot", Location: "Novomoskovsk", CountryID: 7},
		{ID: 2, Name: "Grupa Azoty", Location: "Tarnow", CountryID: 0},
	}, got)
}

func TestParsePeriod(t *testing.T) {
	rows := [][]string{
		{"Methanol production"},
		{"Product", "Methanol"},
		{"Producer", "", "Location", "Q1-98", "Q2-98"},
		{"Azot", "", "Novomoskovsk", "100", "abc"},
		{"Total", "", "", "100", "0"},
		{"Product", "Unknown"},
		{"Metafrax", "", "Gubakha", "5", "6"},
	}
	p := ParsePeriod(rows, testRefs())

	assert.Equal(t, []models.Fact{
		{ID: 1, ProductID: 1, CompanyID: 10, Quarter: "Q1", Year: 1998, Amount: 100},
		{ID: 2, ProductID: 1, CompanyID: 10, Quarter: "Q2", Year: 1998, Amount: 0},
	}, p.Facts)
	assert.Zero(t, p.Skipped)
}

func TestParseCapacity_SkipsUnresolvedCompany(t *testing.T) {
	rows := [][]string{
		{"Product", "Ammonia"},
		{"Producer", "Location", "", "Start", "Technology", "Feedstock", "Q1-22", "Q2-22"},
		{"Azot", "Novomoskovsk", "", "1965", "Haber", "Gas", "1.5", "2"},
		{"Nobody", "Nowhere", "", "", "", "", "9", "9"},
		{"Metafrax", "Gubakha", "", "1984", "ICI", "Gas", "3"},
	}
	p := ParseCapacity(rows, testRefs())

	assert.Equal(t, 1, p.Skipped)
	assert.Len(t, p.Facts, 4)
	assert.Equal(t, models.Fact{ID: 3, ProductID: 2, CompanyID: 11, Quarter: "Q1", Year: 2022, Amount: 3}, p.Facts[2])
	assert.Equal(t, models.Fact{ID: 4, ProductID: 2, CompanyID: 11, Quarter: "Q2", Year: 2022, Amount: 0}, p.Facts[3])
	assert.Equal(t, []models.CompanyDescription{
		{ID: 1, CompanyID: 10, ProductID: 2, StartDate: "1965", Tech: "Haber", Feedstock: "Gas"},
		{ID: 2, CompanyID: 11, ProductID: 2, StartDate: "1984", Tech: "ICI", Feedstock: "Gas"},
	}, p.Descriptions)
}

func TestParseCapacity_RowsBeforeProductIgnored(t *testing.T) {
	rows := [][]string{
		{"Producer", "Location", "", "", "", "", "Q1-22"},
		{"Azot", "Novomoskovsk", "", "", "", "", "1"},
	}
	p := ParseCapacity(rows, testRefs())
	assert.Empty(t, p.Facts)
	assert.Zero(t, p.Skipped)
}

func TestParseFinance(t *testing.T) {
	rows := [][]string{
		{"Gross finance, USD m"},
		{"Producer", "Location", "Q4-99", "Q1-00"},
		{"Azot", "Novomoskovsk", "7", "8.25"},
		{" ", "", "1", "1"},
		{"Azot", "Elsewhere", "1", "1"},
		{"Total", "", "7", "8.25"},
	}
	p := ParseFinance(rows, testRefs())

	assert.Equal(t, []models.Fact{
		{ID: 1, CompanyID: 10, Quarter: "Q4", Year: 1999, Amount: 7},
		{ID: 2, CompanyID: 10, Quarter: "Q1", Year: 2000, Amount: 8.25},
	}, p.Facts)
	assert.Equal(t, 1, p.Skipped)
}

func TestParsePolishChemical(t *testing.T) {
	rows := [][]string{
		{"Product", "", "Q1-23"},
		{" Methanol ", "", "42"},
		{"Product", "", "Q1-99"},
		{"Benzene", "", "1"},
		{"Total", "", "42"},
	}
	p := ParsePolishChemical(rows, testRefs())

	assert.Equal(t, []models.Fact{
		{ID: 1, ProductID: 1, Quarter: "Q1", Year: 2023, Amount: 42},
	}, p.Facts)
	assert.Equal(t, 1, p.Skipped)
}
