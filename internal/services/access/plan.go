package access

import (
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// searchMonths код срока доступа к поиску в месяцах.
var searchMonths = map[int]int{1: 3, 2: 6, 3: 12, 4: 24}

// SearchMonths переводит код срока поиска в месяцы. Неизвестный код даёт 3 месяца.
func SearchMonths(code int) int {
	if m, ok := searchMonths[code]; ok {
		return m
	}
	return 3
}

// Plan строит шаги изменения прав. Для каждой категории удаление важнее выдачи;
// категория без флагов не меняется.
func Plan(req models.AccessUpdate, now time.Time) []models.GrantOp {
	var ops []models.GrantOp

	switch {
	case req.MonthlyNews.Remove:
		ops = append(ops, models.GrantOp{Kind: models.OpDelete, Category: models.CategoryMonthlyNews})
	case req.MonthlyNews.Grant:
		ops = append(ops, models.GrantOp{
			Kind:     models.OpInsert,
			Category: models.CategoryMonthlyNews,
			Start:    now,
			End:      now.AddDate(req.MonthlyNews.Duration, 0, 0),
		})
	}

	switch {
	case req.ExtraCopies.Remove:
		ops = append(ops, models.GrantOp{Kind: models.OpDelete, Category: models.CategoryExtraCopies})
	case req.ExtraCopies.Grant && len(req.ExtraCopies.Emails) > 0:
		copies := req.ExtraCopies.Copies
		if copies < 1 {
			copies = 1
		}
		ops = append(ops, models.GrantOp{Kind: models.OpDelete, Category: models.CategoryExtraCopies})
		for _, email := range req.ExtraCopies.Emails {
			ops = append(ops, models.GrantOp{
				Kind:     models.OpInsert,
				Category: models.CategoryExtraCopies,
				Email:    email,
				Copies:   copies,
			})
		}
	}

	switch {
	case req.SearchAccess.Remove:
		ops = append(ops, models.GrantOp{Kind: models.OpDelete, Category: models.CategorySearch})
	case req.SearchAccess.Grant:
		ops = append(ops, models.GrantOp{
			Kind:     models.OpInsert,
			Category: models.CategorySearch,
			Start:    now,
			End:      now.AddDate(0, SearchMonths(req.SearchAccess.Duration), 0),
		})
	}

	switch {
	case req.StatsAccess.Remove:
		ops = append(ops, models.GrantOp{Kind: models.OpDelete, Category: models.CategoryStats})
	case req.StatsAccess.Grant:
		ops = append(ops, models.GrantOp{
			Kind:            models.OpInsert,
			Category:        models.CategoryStats,
			Start:           now,
			End:             now.AddDate(req.StatsAccess.Duration, 0, 0),
			CentralEuropean: req.StatsAccess.CentralEuropean,
			PolishChemical:  req.StatsAccess.PolishChemical,
		})
	}

	if req.RemoveOtherReports && !req.StatsAccess.Remove {
		ops = append(ops, models.GrantOp{Kind: models.OpClearReports, Category: models.CategoryStats})
	}

	return ops
}
