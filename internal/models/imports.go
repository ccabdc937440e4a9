package models

import "time"

// ImportType код типа загружаемой таблицы.
type ImportType string

const (
	ImportProducts         ImportType = "1"
	ImportCompanies        ImportType = "2"
	ImportPeriod           ImportType = "3"
	ImportCapacity         ImportType = "4"
	ImportCapacityExtended ImportType = "41"
	ImportGrossFinance     ImportType = "5"
	ImportNetFinance       ImportType = "6"
	ImportTurnoverFinance  ImportType = "7"
	ImportPolishChemical   ImportType = "8"
)

// Quarter ключ столбца квартальных данных.
type Quarter struct {
	Code string `db:"quarter" json:"quarter"`
	Year int    `db:"year" json:"year"`
}

// Fact строка квартальных данных: продукт и/или компания, квартал и величина.
type Fact struct {
	ID        int     `db:"id"`
	ProductID int     `db:"product_id"`
	CompanyID int     `db:"company_id"`
	Quarter   string  `db:"quarter"`
	Year      int     `db:"year"`
	Amount    float64 `db:"amount"`
}

// CompanyDescription описание мощности производителя из листа мощностей.
type CompanyDescription struct {
	ID        int    `db:"id"`
	CompanyID int    `db:"company_id"`
	ProductID int    `db:"product_id"`
	StartDate string `db:"start_date"`
	Tech      string `db:"technology"`
	Feedstock string `db:"feedstock"`
}

// ImportResult итог загрузки.
type ImportResult struct {
	BatchID      string     `json:"batchId"`
	Type         ImportType `json:"importType"`
	RowsImported int        `json:"rowsImported"`
	Skipped      int        `json:"skipped"`
	FinishedAt   time.Time  `json:"finishedAt"`
}

// Таблицы, которые разрешено полностью заменять загрузкой.
const (
	TableProducts        = "products"
	TableCompanies       = "companies"
	TablePeriod          = "report_period"
	TableCapacity        = "report_capacity"
	TableCompanyDesc     = "report_company_desc"
	TablePeriod2         = "report2_period"
	TableCapacity2       = "report2_capacity"
	TableCompanyDesc2    = "report2_company_desc"
	TableGrossFinance    = "report_gross_finance"
	TableNetFinance      = "report_net_finance"
	TableTurnoverFinance = "report_turnover_finance"
	TablePolishChemical  = "report_polish_chemical"
)

// TableReplacement новое содержимое таблицы. Rows срез структур с тегами db.
type TableReplacement struct {
	Table string
	Rows  any
}

// ImportBatch одна загрузка: набор таблиц, заменяемых атомарно.
type ImportBatch struct {
	ID           string
	ImportType   string
	RowsImported int
	Tables       []TableReplacement
}
