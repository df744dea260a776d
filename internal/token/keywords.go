package token

// keywords строится один раз при инициализации пакета и дальше только читается,
// поэтому таблицу можно использовать из любого числа горутин без синхронизации.
var keywords = map[string]Kind{
	"as":        KwAs,
	"break":     KwBreak,
	"const":     KwConst,
	"continue":  KwContinue,
	"else":      KwElse,
	"enum":      KwEnum,
	"false":     KwFalse,
	"fn":        KwFn,
	"for":       KwFor,
	"if":        KwIf,
	"impl":      KwImpl,
	"in":        KwIn,
	"interface": KwInterface,
	"let":       KwLet,
	"match":     KwMatch,
	"mod":       KwMod,
	"mut":       KwMut,
	"pub":       KwPub,
	"return":    KwReturn,
	"Self":      KwSelfType,
	"self":      KwSelf,
	"struct":    KwStruct,
	"true":      KwTrue,
	"type":      KwType,
	"use":       KwUse,
	"where":     KwWhere,
	"while":     KwWhile,
	"yield":     KwYield,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "Self" и "self": разные токены.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the keyword spellings (for docs and tests).
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
