package models

// RowError описывает группу ошибок одной строки CSV-файла:
// номер строки и список человеко-читаемых сообщений.
// Имена JSON-полей зафиксированы контрактом API исходной системы.
type RowError struct {
	Line     int      `json:"linha"`
	Messages []string `json:"mensagensErro"`
}

// ImportResult — результат одного вызова импорта CSV.
// Не сохраняется в хранилище, возвращается вызывающему один раз.
type ImportResult struct {
	TotalProcessed int        `json:"totalLinhasProcessadas"`
	TotalErrors    int        `json:"totalLinhasComErro"`
	Errors         []RowError `json:"erros"`
}
