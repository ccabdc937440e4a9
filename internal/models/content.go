package models

import "time"

// NewsIssue PDF-выпуск одной из серий новостей.
type NewsIssue struct {
	ID        int       `db:"id" json:"id"`
	Series    string    `db:"series" json:"series"`
	Title     string    `db:"title" json:"title"`
	IssueNo   int       `db:"issue_no" json:"issueNo"`
	PDFLink   string    `db:"pdf_link" json:"pdfLink"`
	ForSample bool      `db:"for_sample" json:"forSample"`
	Month     int       `db:"month" json:"month"`
	Year      int       `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Issue текстовый выпуск журнала.
type Issue struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	IssueNo   int       `db:"issue_no" json:"issueNo"`
	Content   string    `db:"content" json:"content"`
	Month     int       `db:"month" json:"month"`
	Year      int       `db:"year" json:"year"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Article статья выпуска.
type Article struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IssueNo   int       `db:"issue_no" json:"issueNo"`
	Month     int       `db:"month" json:"month"`
	Year      int       `db:"year" json:"year"`
	Scrolling bool      `db:"scrolling" json:"scrolling"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ArticlePage страница списка статей.
type ArticlePage struct {
	Items []Article `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// Event мероприятие в календаре сайта.
type Event struct {
	ID      int    `db:"id" json:"id"`
	Title   string `db:"title" json:"title" validate:"required,max=255"`
	Link    string `db:"link" json:"link" validate:"omitempty,max=500"`
	Venue   string `db:"venue" json:"venue" validate:"max=255"`
	Display bool   `db:"display" json:"display"`
}

// Link внешняя ссылка на сайте.
type Link struct {
	ID      int    `db:"id" json:"id"`
	Title   string `db:"title" json:"title" validate:"required,max=255"`
	URL     string `db:"url" json:"url" validate:"required,max=500"`
	Display bool   `db:"display" json:"display"`
}

// Page статическая страница сайта.
type Page struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// PageContent блок содержимого страницы.
type PageContent struct {
	ID      int    `db:"id" json:"id"`
	PageID  int    `db:"page_id" json:"pageId" validate:"required,min=1"`
	Content string `db:"content" json:"content" validate:"required"`
}

// SearchKeyword подсказка поиска: пользовательский запрос и предлагаемый вариант.
type SearchKeyword struct {
	ID           int    `db:"id" json:"id"`
	UserKey      string `db:"user_key" json:"userKey" validate:"required,max=255"`
	SuggestedKey string `db:"suggested_key" json:"suggestedKey" validate:"required,max=255"`
	Display      bool   `db:"display" json:"display"`
}

// Contact обращение через форму обратной связи.
type Contact struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Company   string    `db:"company" json:"company"`
	Phone     string    `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CostOption вариант регистрации, к которому привязаны цены.
type CostOption struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CostPrice цена позиции варианта регистрации.
type CostPrice struct {
	ID       int     `db:"id" json:"id"`
	Name     string  `db:"name" json:"name" validate:"required,max=255"`
	Price    float64 `db:"price" json:"price" validate:"min=0"`
	OptionID int     `db:"option_id" json:"optionId"`
}
