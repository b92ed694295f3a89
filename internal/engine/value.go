package engine

import "strings"

// refMarker — префикс ссылки во входных шаблонах шага.
const refMarker = "$"

// Value — значение параметра шага: литерал или ссылка на имя.
//
// Различение «литерал или ссылка» происходит один раз при добавлении
// шага в граф, а не пересниффится из строки при каждом резолве.
// Это убирает двусмысленность между строковым литералом, который
// случайно начинается с "$", и настоящей ссылкой: строка вида
// "$price in USD" не является валидным идентификатором и остаётся
// литералом, а принудительный литерал можно задать через Lit.
type Value struct {
	ref   string
	lit   any
	isRef bool
}

// Lit создаёт литеральное значение. Строка "$x" внутри Lit никогда
// не трактуется как ссылка.
func Lit(v any) Value {
	return Value{lit: v}
}

// Ref создаёт ссылку на имя (initial input или результат шага).
// Имя указывается без маркера "$".
func Ref(name string) Value {
	return Value{ref: name, isRef: true}
}

// ParseValue классифицирует сырое значение из определения шага.
//
// Правила:
//   - готовый Value проходит без изменений (позволяет Lit/Ref явно);
//   - строка вида "$ident" или "$ident.field" становится ссылкой;
//   - всё остальное (включая строки с "$" не в форме ссылки,
//     числа, структуры) — литерал.
//
// Ссылкой считается только значение, целиком являющееся "$ident";
// интерполяция внутри строк не поддерживается.
func ParseValue(raw any) Value {
	if v, ok := raw.(Value); ok {
		return v
	}

	s, ok := raw.(string)
	if !ok {
		return Lit(raw)
	}

	name, ok := parseRef(s)
	if !ok {
		return Lit(raw)
	}

	return Ref(name)
}

// IsRef возвращает true, если значение является ссылкой.
func (v Value) IsRef() bool {
	return v.isRef
}

// RefName возвращает имя ссылки (без маркера "$").
// Для литералов возвращает пустую строку.
func (v Value) RefName() string {
	return v.ref
}

// Literal возвращает литеральное значение.
func (v Value) Literal() any {
	return v.lit
}

// parseRef проверяет, является ли строка ссылкой "$ident[.field...]",
// и возвращает имя без маркера.
func parseRef(s string) (string, bool) {
	if !strings.HasPrefix(s, refMarker) {
		return "", false
	}

	name := s[len(refMarker):]
	if !validRefName(name) {
		return "", false
	}

	return name, true
}

// validRefName проверяет форму имени ссылки: идентификаторы,
// разделённые точками (доступ к полю результата).
func validRefName(name string) bool {
	if name == "" {
		return false
	}

	for _, part := range strings.Split(name, ".") {
		if !validIdent(part) {
			return false
		}
	}
	return true
}

// validIdent проверяет один идентификатор: буква или подчёркивание,
// дальше буквы, цифры, подчёркивания.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
