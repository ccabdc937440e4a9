// Package month содержит календарную арифметику периодических выпусков:
// номер выпуска от эпохи серии, подписи месяцев и имя PDF-файла.
package month

import (
	"fmt"
)

var labels = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Valid сообщает, лежит ли месяц в диапазоне 1..12.
func Valid(m int) bool {
	return m >= 1 && m <= 12
}

// Label возвращает трёхбуквенную подпись месяца. Для неверного месяца пустая строка.
func Label(m int) string {
	if !Valid(m) {
		return ""
	}
	return labels[m-1]
}

// Labels возвращает подписи JAN..DEC.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}

// IssueNumber считает номер выпуска серии с эпохой epochYear.
// Первый выпуск приходится на январь года эпохи; для года эпохи и более
// ранних номер равен месяцу.
func IssueNumber(epochYear, m, year int) int {
	if year > epochYear {
		return (year-epochYear)*12 + m
	}
	return m
}

// IssueTitle заголовок выпуска в виде "Issue no N".
func IssueTitle(issueNo int) string {
	return fmt.Sprintf("Issue no %d", issueNo)
}

// PDFName каноническое имя файла выпуска, например "03-MAR 2024.pdf".
func PDFName(m, year int) string {
	return fmt.Sprintf("%02d-%s %d.pdf", m, Label(m), year)
}
