package domain

var Tables = []interface{}{
	// System
	&SysOpr{},
	// Sheets
	&Product{},
	&OrderRow{},
	&SpecialRequest{},
}
