// Package parser builds an ast.Program from a token stream.
//
// Разбор: рекурсивный спуск с пробами на копии курсора: TokenCursor
// копируется по значению, а узлы, выделенные в отброшенной ветке,
// срезаются через ast.Builder.Mark/Rewind. Ошибка синтаксиса обрывает
// текущее объявление; цикл верхнего уровня пропускает токены до начала
// следующего объявления и продолжает.
package parser
