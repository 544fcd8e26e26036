package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeSort
	ModeHistory
	ModeExport
	ModeHelp
)

type TableID string

const (
	TableStandard TableID = "standard-table"
	TableExtended TableID = "extended-table"
)

type ActionType int

const (
	ActionReorder ActionType = iota
	ActionResize
	ActionResetLayout
)

const (
	minColumnWidth     = 60  // pixel units
	pxPerCell          = 8   // one terminal cell, same as the PNG export char width
	maxAutoWidth       = 320 // cap for content-fitted columns
	defaultResultLimit = 200
	resizeStep         = pxPerCell
)

var df1Columns = []string{
	"Mã TBMT", "Chủ đầu tư", "Quyết định phê duyệt", "Ngày phê duyệt", "Ngày hết hiệu lực",
	"Đơn vị tính", "Số lượng", "Đơn giá trúng thầu (VND)", "Thành tiền (VND)", "Tên thuốc",
	"Tên hoạt chất", "Nồng độ, hàm lượng", "Đường dùng", "Dạng bào chế", "Quy cách",
	"Nhóm thuốc", "GĐKLH hoặc GPNK", "Cơ sở sản xuất", "Xuất xứ", "Nhà thầu trúng thầu",
	"Hình thức LCNT", "Địa điểm", "Tình trạng hiệu lực",
}

var df2Columns = []string{
	"Mã TBMT", "Chủ đầu tư", "Quyết định phê duyệt", "Ngày phê duyệt", "Ngày hết hiệu lực",
	"Đơn vị tính", "Khối lượng", "Đơn giá trúng thầu (VND)", "Thành tiền (VND)", "Tên hàng hóa",
	"Nhãn hiệu", "Ký mã hiệu", "Tính năng kỹ thuật", "Xuất xứ", "Hãng sản xuất",
	"Nhà thầu trúng thầu", "Hình thức LCNT", "Địa điểm", "Tình trạng hiệu lực",
}

// tableSpec is the static description of one logical table.
type tableSpec struct {
	ID         TableID
	Title      string
	Columns    []string
	OrderKey   string
	WidthKey   string
	RightAlign []string
	Formatters map[string]formatter
}

func defaultTableSpecs() []tableSpec {
	return []tableSpec{
		{
			ID:         TableStandard,
			Title:      "Dữ liệu chuẩn",
			Columns:    df1Columns,
			OrderKey:   "columnOrderDf1",
			WidthKey:   "colWidthDf1",
			RightAlign: []string{"Số lượng", "Đơn giá trúng thầu (VND)", "Thành tiền (VND)"},
			Formatters: map[string]formatter{
				"Ngày phê duyệt":           formatDate,
				"Ngày hết hiệu lực":        formatDate,
				"Số lượng":                 formatNumber,
				"Đơn giá trúng thầu (VND)": formatCurrency,
				"Thành tiền (VND)":         formatCurrency,
			},
		},
		{
			ID:         TableExtended,
			Title:      "Dữ liệu tổng hợp",
			Columns:    df2Columns,
			OrderKey:   "columnOrderDf2",
			WidthKey:   "colWidthDf2",
			RightAlign: []string{"Khối lượng", "Đơn giá trúng thầu (VND)", "Thành tiền (VND)"},
			Formatters: map[string]formatter{
				"Ngày phê duyệt":           formatDate,
				"Ngày hết hiệu lực":        formatDate,
				"Khối lượng":               formatNumber,
				"Đơn giá trúng thầu (VND)": formatCurrency,
				"Thành tiền (VND)":         formatCurrency,
			},
		},
	}
}
