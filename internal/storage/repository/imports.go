package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// insertChunk ограничивает число строк в одном многострочном INSERT.
const insertChunk = 500

var replaceableTables = map[string][]string{
	models.TableProducts:        {"id", "name", "product_group", "display"},
	models.TableCompanies:       {"id", "name", "location", "country_id", "display"},
	models.TablePeriod:          factColumns,
	models.TableCapacity:        factColumns,
	models.TablePeriod2:         factColumns,
	models.TableCapacity2:       factColumns,
	models.TableGrossFinance:    factColumns,
	models.TableNetFinance:      factColumns,
	models.TableTurnoverFinance: factColumns,
	models.TablePolishChemical:  factColumns,
	models.TableCompanyDesc:     descColumns,
	models.TableCompanyDesc2:    descColumns,
}

var (
	factColumns = []string{"id", "product_id", "company_id", "quarter", "year", "amount"}
	descColumns = []string{"id", "company_id", "product_id", "start_date", "technology", "feedstock"}
)

// ReplaceTables заменяет содержимое таблиц загрузки в одной транзакции.
// Строки сначала пишутся во временные таблицы, затем переносятся в целевые;
// при любой ошибке целевые таблицы остаются прежними.
func (s *Storage) ReplaceTables(ctx context.Context, batch models.ImportBatch) error {
	const op = "storage.ReplaceTables"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	for _, t := range batch.Tables {
		if _, ok := replaceableTables[t.Table]; !ok {
			return fmt.Errorf("%s: table %q is not replaceable", op, t.Table)
		}
	}

	suffix := strings.ReplaceAll(batch.ID, "-", "")
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i, t := range batch.Tables {
			if err := replaceTable(ctx, tx, t, fmt.Sprintf("staging_%s_%d", suffix, i)); err != nil {
				return fmt.Errorf("%s: %w", t.Table, err)
			}
		}
		_, err := namedExec(ctx, tx,
			`INSERT INTO import_batches (id, import_type, rows_imported) VALUES (:id, :import_type, :rows_imported)`,
			map[string]any{"id": batch.ID, "import_type": batch.ImportType, "rows_imported": batch.RowsImported})
		return err
	})
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func replaceTable(ctx context.Context, tx *sqlx.Tx, t models.TableReplacement, staging string) error {
	cols := strings.Join(replaceableTables[t.Table], ", ")

	if _, err := tx.ExecContext(ctx,
		`CREATE TEMP TABLE `+staging+` (LIKE `+t.Table+` INCLUDING DEFAULTS) ON COMMIT DROP`); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}

	rows := reflect.ValueOf(t.Rows)
	if rows.Kind() != reflect.Slice {
		return fmt.Errorf("rows must be a slice, got %T", t.Rows)
	}
	insert := `INSERT INTO ` + staging + ` (` + cols + `) VALUES (:` +
		strings.Join(replaceableTables[t.Table], ", :") + `)`
	for start := 0; start < rows.Len(); start += insertChunk {
		end := min(start+insertChunk, rows.Len())
		if _, err := tx.NamedExecContext(ctx, insert, rows.Slice(start, end).Interface()); err != nil {
			return fmt.Errorf("stage rows %d-%d: %w", start, end, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+t.Table); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+t.Table+` (`+cols+`) SELECT `+cols+` FROM `+staging); err != nil {
		return fmt.Errorf("copy from staging: %w", err)
	}
	return nil
}
