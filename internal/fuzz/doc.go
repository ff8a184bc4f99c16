// Package fuzztests houses Go fuzz harnesses for the diagram pipeline
// (source -> diagram.Parse -> lint). They guard against panics, hangs and
// drift between the parser, the line validator and the lint pass on
// arbitrary input.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через парсер и линтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/diagram, internal/lint, internal/diag.
package fuzztests
