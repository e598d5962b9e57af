package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/watchlist"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the sheet written by WriteXLSX.
const SheetName = "自选股"

// header of the table view, shared with the spreadsheet.
var header = []any{"名称", "代码", "当前价", "涨跌幅", "涨跌额", "今日盈亏", "成交量", "持仓(手)", "最高", "最低", "日期", "时间"}

// WriteXLSX writes the table view of s as a spreadsheet. Rows without data
// only hold the code. The last row holds the total profit.
func WriteXLSX(w io.Writer, s *watchlist.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	q := NewQuotes(s, Options{})
	for i, r := range q.Rows {
		var values []any
		if r.NoData {
			values = []any{NoData, r.Symbol}
		} else {
			values = []any{r.Name, r.Symbol, r.Price, r.Percent, r.Change, r.Profit, r.Volume, r.Count, r.High, r.Low, r.Date, r.Time}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}
	cell, err := excelize.CoordinatesToCellName(5, len(q.Rows)+3)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &[]any{"今日盈亏总计", s.TotalProfit}); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write spreadsheet: %w", err)
	}
	return nil
}
