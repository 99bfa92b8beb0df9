package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestEnumerations(t *testing.T) {
	assert.Equal(t, []string{
		"Federal Government", "Provincial Government", "Local Municipality", "Other",
	}, Sources)
	assert.Equal(t, []string{
		"Current Expenditure", "Capital Expenditure", "Supplementary Grant", "Special Grant", "Other Grant",
	}, GrantTypes)

	assert.True(t, IsSource("Local Municipality"))
	assert.False(t, IsSource("local municipality"))
	assert.True(t, IsGrantType("Special Grant"))
	assert.False(t, IsGrantType("Grant"))
}

func TestCategories(t *testing.T) {
	fields := []string{}
	for _, c := range Categories() {
		fields = append(fields, c.Field())
	}
	assert.Equal(t, []string{"a4Files", "nepaliFiles", "extraFiles", "otherFiles"}, fields)

	c, ok := CategoryByField("nepaliFiles")
	assert.True(t, ok)
	assert.Equal(t, CategoryNepali, c)

	_, ok = CategoryByField("files")
	assert.False(t, ok)

	assert.Equal(t, "", Category(7).Field())
	assert.False(t, Category(-1).Valid())
}

func TestCategoryAccepts(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		filename string
		want     bool
	}{
		{"a4 pdf", CategoryA4, "budget.pdf", true},
		{"a4 upper case ext", CategoryA4, "BUDGET.PDF", true},
		{"a4 docx", CategoryA4, "budget.docx", false},
		{"nepali docx", CategoryNepali, "anudan.docx", true},
		{"extra spreadsheet", CategoryExtra, "lines.xlsx", true},
		{"extra image", CategoryExtra, "scan.png", false},
		{"other anything", CategoryOther, "photo.jpeg", true},
		{"other no ext", CategoryOther, "README", true},
		{"invalid category", Category(9), "a.pdf", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Accepts(tt.filename))
		})
	}
	assert.Equal(t, ".pdf,.doc,.docx", CategoryNepali.Accept())
	assert.Equal(t, "", CategoryOther.Accept())
}

func TestFiscalYears(t *testing.T) {
	fys := FiscalYears()
	require.Len(t, fys, 10)
	assert.Equal(t, FiscalYear{ID: "2020-2021", Name: "FY 2020/21"}, fys[0])
	assert.Equal(t, FiscalYear{ID: "2029-2030", Name: "FY 2029/30"}, fys[9])

	fy, ok := FiscalYearByID("2024-2025")
	assert.True(t, ok)
	assert.Equal(t, "FY 2024/25", fy.Name)

	_, ok = FiscalYearByID("1999-2000")
	assert.False(t, ok)

	// callers get a copy
	fys[0].ID = "changed"
	assert.Equal(t, "2020-2021", FiscalYears()[0].ID)
}
