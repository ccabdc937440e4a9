package importer

import (
	"strconv"
	"strings"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Метки строк листа.
const (
	labelProduct  = "Product"
	labelGroup    = "Group"
	labelProducer = "Producer"
	labelLocation = "Location"
	labelCountry  = "Country"
	labelTotal    = "Total"
)

// Смещения первого столбца кварталов в строке заголовка.
const (
	periodOffset   = 3
	capacityOffset = 6
	financeOffset  = 2
	polishOffset   = 2
)

const defaultProductGroup = "z"

// column столбец квартальных данных листа.
type column struct {
	index   int
	quarter models.Quarter
}

// companyKey производитель однозначно определяется названием и площадкой.
type companyKey struct {
	name     string
	location string
}

// Refs справочники, по которым разрешаются строки листа.
type Refs struct {
	Products  map[string]int
	Companies map[companyKey]int
	Countries map[string]int
}

// NewRefs строит справочники из загруженных ранее продуктов, производителей и стран.
func NewRefs(products []models.Product, companies []models.Company, countries []models.Country) Refs {
	r := Refs{
		Products:  make(map[string]int, len(products)),
		Companies: make(map[companyKey]int, len(companies)),
		Countries: make(map[string]int, len(countries)),
	}
	for _, p := range products {
		r.Products[p.Name] = p.ID
	}
	for _, c := range companies {
		r.Companies[companyKey{name: c.Name, location: c.Location}] = c.ID
	}
	for _, c := range countries {
		r.Countries[c.Name] = c.ID
	}
	return r
}

func (r Refs) company(name, location string) (int, bool) {
	id, ok := r.Companies[companyKey{name: name, location: location}]
	return id, ok
}

// Parsed результат разбора листа с квартальными данными.
type Parsed struct {
	Facts        []models.Fact
	Descriptions []models.CompanyDescription
	// Skipped число строк данных, для которых не нашёлся продукт или производитель.
	Skipped int
}

// DecodeQuarter разбирает метку столбца вида "Q1-98": код квартала из первых двух
// символов, год из символов 4-5. Годы 97-99 относятся к 1900-м, остальные к 2000-м.
func DecodeQuarter(label string) (models.Quarter, bool) {
	label = strings.TrimSpace(label)
	if len(label) < 5 {
		return models.Quarter{}, false
	}
	yy, err := strconv.Atoi(label[3:5])
	if err != nil || yy < 0 {
		return models.Quarter{}, false
	}
	year := 2000 + yy
	if yy >= 97 {
		year = 1900 + yy
	}
	return models.Quarter{Code: label[0:2], Year: year}, true
}

// Amount переводит значение ячейки в число; пустое или нечисловое значение даёт 0.
func Amount(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func headerColumns(row []string, offset int) []column {
	var cols []column
	for i := offset; i < len(row); i++ {
		if q, ok := DecodeQuarter(row[i]); ok {
			cols = append(cols, column{index: i, quarter: q})
		}
	}
	return cols
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := idx[h]; !seen && h != "" {
			idx[h] = i
		}
	}
	return idx
}

// ParseProducts разбирает лист продуктов. Первая строка заголовок с колонками
// Product и Group; строки с пустым продуктом или повтором заголовка пропускаются.
func ParseProducts(rows [][]string) ([]models.Product, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	idx := headerIndex(rows[0])
	nameCol, ok := idx[labelProduct]
	if !ok {
		return nil, false
	}
	groupCol, hasGroup := idx[labelGroup]

	products := make([]models.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" || name == labelProduct {
			continue
		}
		group := defaultProductGroup
		if hasGroup && cell(row, groupCol) != "" {
			group = cell(row, groupCol)
		}
		products = append(products, models.Product{ID: len(products) + 1, Name: name, Group: group})
	}
	return products, true
}

// ParseCompanies разбирает лист производителей с колонками Producer, Location и
// Country. Страна ищется по точному названию; неизвестная страна даёт 0.
func ParseCompanies(rows [][]string, refs Refs) ([]models.Company, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	idx := headerIndex(rows[0])
	nameCol, ok := idx[labelProducer]
	if !ok {
		return nil, false
	}
	locCol, hasLoc := idx[labelLocation]
	countryCol, hasCountry := idx[labelCountry]

	companies := make([]models.Company, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" || name == labelProducer {
			continue
		}
		c := models.Company{ID: len(companies) + 1, Name: name}
		if hasLoc {
			c.Location = cell(row, locCol)
		}
		if hasCountry {
			c.CountryID = refs.Countries[cell(row, countryCol)]
		}
		companies = append(companies, c)
	}
	return companies, true
}

// ParsePeriod разбирает лист производства по периодам. Строка "Product" задаёт
// текущий продукт, строка "Producer" задаёт столбцы кварталов с третьего.
// Строка данных: производитель в первом столбце, площадка в третьем.
func ParsePeriod(rows [][]string, refs Refs) Parsed {
	return parseByProduct(rows, refs, periodOffset, 2, false)
}

// ParseCapacity разбирает лист мощностей: столбцы кварталов с седьмого, площадка
// во втором столбце, в столбцах 4-6 описание мощности производителя.
func ParseCapacity(rows [][]string, refs Refs) Parsed {
	return parseByProduct(rows, refs, capacityOffset, 1, true)
}

func parseByProduct(rows [][]string, refs Refs, offset, locationCol int, describe bool) Parsed {
	var (
		out       Parsed
		cols      []column
		productID int
	)
	for _, row := range rows {
		first := cell(row, 0)
		switch {
		case first == labelProduct && cell(row, 1) != "":
			productID = refs.Products[cell(row, 1)]
		case first == labelProducer:
			cols = headerColumns(row, offset)
		case first == "" || first == labelTotal || productID == 0:
			continue
		default:
			companyID, ok := refs.company(first, cell(row, locationCol))
			if !ok {
				out.Skipped++
				continue
			}
			if describe {
				out.Descriptions = append(out.Descriptions, models.CompanyDescription{
					ID:        len(out.Descriptions) + 1,
					CompanyID: companyID,
					ProductID: productID,
					StartDate: cell(row, 3),
					Tech:      cell(row, 4),
					Feedstock: cell(row, 5),
				})
			}
			for _, c := range cols {
				out.Facts = append(out.Facts, models.Fact{
					ID:        len(out.Facts) + 1,
					ProductID: productID,
					CompanyID: companyID,
					Quarter:   c.quarter.Code,
					Year:      c.quarter.Year,
					Amount:    Amount(cell(row, c.index)),
				})
			}
		}
	}
	return out
}

// ParseFinance разбирает финансовый лист: заголовок "Producer" со столбцами
// кварталов с третьего, производитель и площадка в первых двух столбцах.
func ParseFinance(rows [][]string, refs Refs) Parsed {
	var (
		out  Parsed
		cols []column
	)
	for _, row := range rows {
		first := strings.TrimSpace(cell(row, 0))
		switch {
		case first == labelProducer && cols == nil:
			cols = headerColumns(row, financeOffset)
		case cols == nil || first == "" || first == labelTotal || first == labelProducer:
			continue
		default:
			companyID, ok := refs.company(cell(row, 0), cell(row, 1))
			if !ok {
				out.Skipped++
				continue
			}
			for _, c := range cols {
				out.Facts = append(out.Facts, models.Fact{
					ID:        len(out.Facts) + 1,
					CompanyID: companyID,
					Quarter:   c.quarter.Code,
					Year:      c.quarter.Year,
					Amount:    Amount(cell(row, c.index)),
				})
			}
		}
	}
	return out
}

// ParsePolishChemical разбирает лист польской химии: первая строка "Product"
// заголовок, дальше название продукта в первом столбце и значения с третьего.
func ParsePolishChemical(rows [][]string, refs Refs) Parsed {
	var (
		out    Parsed
		cols   []column
		header bool
	)
	for _, row := range rows {
		first := cell(row, 0)
		switch {
		case first == labelProduct:
			if !header {
				cols = headerColumns(row, polishOffset)
				header = true
			}
		case strings.TrimSpace(first) == "" || first == labelTotal:
			continue
		default:
			productID, ok := refs.Products[strings.TrimSpace(first)]
			if !ok {
				out.Skipped++
				continue
			}
			for _, c := range cols {
				out.Facts = append(out.Facts, models.Fact{
					ID:        len(out.Facts) + 1,
					ProductID: productID,
					Quarter:   c.quarter.Code,
					Year:      c.quarter.Year,
					Amount:    Amount(cell(row, c.index)),
				})
			}
		}
	}
	return out
}
