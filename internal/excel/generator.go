package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/siteworks/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.RegisterReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Остатки и обороты"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Регистр выполнения работ")
	set("A2", "Начало периода")
	set("B2", formatPeriod(report.PeriodFrom))
	set("A3", "Конец периода")
	set("B3", formatPeriod(report.PeriodTo))

	tableRow := 5
	headers := []string{
		"Объект",
		"Смета",
		"Работа",
		"Приход, кол-во",
		"Приход, сумма",
		"Расход, кол-во",
		"Расход, сумма",
		"Остаток, кол-во",
		"Остаток, сумма",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	totalIncomeSum, totalExpenseSum := 0.0, 0.0
	for i, row := range report.Rows {
		rowNum := tableRow + 1 + i
		set(fmt.Sprintf("A%d", rowNum), nameOrID(row.ObjectName, row.ObjectID.String()))
		set(fmt.Sprintf("B%d", rowNum), nameOrID(row.EstimateNumber, row.EstimateID.String()))
		set(fmt.Sprintf("C%d", rowNum), row.WorkName)
		set(fmt.Sprintf("D%d", rowNum), formatAmount(row.IncomeQuantity, 3))
		set(fmt.Sprintf("E%d", rowNum), formatAmount(row.IncomeSum, 2))
		set(fmt.Sprintf("F%d", rowNum), formatAmount(row.ExpenseQuantity, 3))
		set(fmt.Sprintf("G%d", rowNum), formatAmount(row.ExpenseSum, 2))
		set(fmt.Sprintf("H%d", rowNum), formatAmount(row.BalanceQuantity, 3))
		set(fmt.Sprintf("I%d", rowNum), formatAmount(row.BalanceSum, 2))
		totalIncomeSum += row.IncomeSum
		totalExpenseSum += row.ExpenseSum
	}

	totalRow := tableRow + 1 + len(report.Rows)
	set(fmt.Sprintf("A%d", totalRow), "Итого")
	set(fmt.Sprintf("E%d", totalRow), formatAmount(totalIncomeSum, 2))
	set(fmt.Sprintf("G%d", totalRow), formatAmount(totalExpenseSum, 2))
	set(fmt.Sprintf("I%d", totalRow), formatAmount(totalIncomeSum-totalExpenseSum, 2))

	_ = file.SetColWidth(sheet, "A", "B", 32)
	_ = file.SetColWidth(sheet, "C", "C", 45)
	_ = file.SetColWidth(sheet, "D", "I", 16)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func formatPeriod(t time.Time) string {
	if t.IsZero() {
		return "не ограничено"
	}
	return t.Format("2006-01")
}

func formatAmount(value float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, value)
}
