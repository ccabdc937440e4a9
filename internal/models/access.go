package models

import "time"

// Window доступ к категории с датой окончания.
type Window struct {
	HasAccess bool       `json:"hasAccess"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ExtraCopies дополнительные получатели ежемесячного дайджеста.
type ExtraCopies struct {
	HasAccess bool     `json:"hasAccess"`
	Copies    int      `json:"copies"`
	Emails    []string `json:"emails"`
}

// OtherReports региональные отчёты при доступе к статистике.
type OtherReports struct {
	CentralEuropean bool `json:"centralEuropean"`
	PolishChemical  bool `json:"polishChemical"`
}

// Access текущие права подписчика по всем категориям.
type Access struct {
	UserID       int          `json:"userId"`
	Username     string       `json:"username"`
	MonthlyNews  Window       `json:"monthlyNews"`
	ExtraCopies  ExtraCopies  `json:"extraCopies"`
	SearchAccess Window       `json:"searchAccess"`
	StatsAccess  Window       `json:"statsAccess"`
	OtherReports OtherReports `json:"otherReports"`
}

// GrantEdit изменение одной категории: удалить или выдать на Duration единиц.
type GrantEdit struct {
	Grant    bool `json:"grant"`
	Remove   bool `json:"remove"`
	Duration int  `json:"duration" validate:"min=0,max=50"`
}

// ExtraCopiesEdit изменение дополнительных получателей.
type ExtraCopiesEdit struct {
	Grant  bool     `json:"grant"`
	Remove bool     `json:"remove"`
	Copies int      `json:"copies" validate:"min=0,max=1000"`
	Emails []string `json:"emails" validate:"dive,email"`
}

// StatsEdit изменение доступа к статистике вместе с региональными отчётами.
type StatsEdit struct {
	GrantEdit
	CentralEuropean bool `json:"centralEuropean"`
	PolishChemical  bool `json:"polishChemical"`
}

// AccessUpdate запрос на изменение прав подписчика.
type AccessUpdate struct {
	MonthlyNews        GrantEdit       `json:"monthlyNews"`
	ExtraCopies        ExtraCopiesEdit `json:"extraCopies"`
	SearchAccess       GrantEdit       `json:"searchAccess"`
	StatsAccess        StatsEdit       `json:"statsAccess"`
	RemoveOtherReports bool            `json:"removeOtherReports"`
}

// AccessChanged событие об изменении прав, публикуется после фиксации.
type AccessChanged struct {
	UserID    int       `json:"userId"`
	Username  string    `json:"username"`
	ChangedAt time.Time `json:"changedAt"`
}

// GrantCategory категория прав доступа.
type GrantCategory string

const (
	CategoryMonthlyNews GrantCategory = "monthly_news"
	CategoryExtraCopies GrantCategory = "extra_copies"
	CategorySearch      GrantCategory = "search"
	CategoryStats       GrantCategory = "stats"
)

// GrantOpKind вид шага изменения прав.
type GrantOpKind int

const (
	// OpDelete удалить все строки категории.
	OpDelete GrantOpKind = iota + 1
	// OpInsert добавить строку категории.
	OpInsert
	// OpClearReports снять флаги региональных отчётов.
	OpClearReports
)

// GrantOp один шаг изменения прав. Все шаги запроса выполняются в одной транзакции.
type GrantOp struct {
	Kind            GrantOpKind
	Category        GrantCategory
	Start           time.Time
	End             time.Time
	Email           string
	Copies          int
	CentralEuropean bool
	PolishChemical  bool
}

// GrantAggregate агрегат по действующим строкам категории.
type GrantAggregate struct {
	Count  int        `db:"cnt"`
	MaxEnd *time.Time `db:"max_end"`
}

// ExtraCopiesAggregate агрегат по дополнительным получателям.
type ExtraCopiesAggregate struct {
	Count     int
	MaxCopies int
	Emails    []string
}

// AccessSnapshot сырые агрегаты всех категорий подписчика.
type AccessSnapshot struct {
	MonthlyNews     GrantAggregate
	ExtraCopies     ExtraCopiesAggregate
	Search          GrantAggregate
	Stats           GrantAggregate
	CentralEuropean int
	PolishChemical  int
}
