// Package trace records begin/end spans of crest front-end work.
//
// Включается флагами:
//
//	crest parse --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: нулевая стоимость, когда трассировка выключена
//   - StreamTracer: сразу пишет в файл или stderr (text или NDJSON)
//   - RingTracer: держит последние N событий в памяти
//
// Уровни: off, error, phase (driver + pass), detail (+ per-file), debug.
//
// Tracer передаётся через context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
