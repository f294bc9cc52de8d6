package datatourisme

import (
	"strconv"
)

// Document - типизированный слой доступа к linked-data документу DATAtourisme.
// Документы сильно гетерогенны: почти каждое поле опционально, значения бывают
// строкой, числом, массивом или вложенным объектом. Все методы тотальны и при
// несовпадении формы возвращают нулевое значение, никогда не паникуют.
type Document map[string]any

// AsDocument приводит произвольное значение к Document
func AsDocument(v any) Document {
	if m, ok := v.(map[string]any); ok {
		return Document(m)
	}
	return nil
}

// Object возвращает вложенный объект по ключу
func (d Document) Object(key string) Document {
	if d == nil {
		return nil
	}
	return AsDocument(d[key])
}

// ObjectAt возвращает i-й элемент массива объектов по ключу.
// Если значение - одиночный объект, а не массив, оно считается элементом 0.
func (d Document) ObjectAt(key string, i int) Document {
	if d == nil {
		return nil
	}
	switch v := d[key].(type) {
	case []any:
		if i >= 0 && i < len(v) {
			return AsDocument(v[i])
		}
	case map[string]any:
		if i == 0 {
			return Document(v)
		}
	}
	return nil
}

// Slice возвращает массив значений по ключу
func (d Document) Slice(key string) []any {
	if d == nil {
		return nil
	}
	if v, ok := d[key].([]any); ok {
		return v
	}
	return nil
}

// String возвращает строковое значение по ключу; числа приводятся к строке
func (d Document) String(key string) string {
	if d == nil {
		return ""
	}
	return asString(d[key])
}

// StringAt возвращает первую строку из массивной формы значения.
// Значение-строка считается массивом из одного элемента.
func (d Document) StringAt(key string, i int) string {
	if d == nil {
		return ""
	}
	switch v := d[key].(type) {
	case []any:
		if i >= 0 && i < len(v) {
			return asString(v[i])
		}
	case string:
		if i == 0 {
			return v
		}
	}
	return ""
}

// LangFirst возвращает первую строку языковой карты по цепочке предпочтений
// языков: data[key][lang][0]
func (d Document) LangFirst(key string, langs ...string) string {
	langMap := d.Object(key)
	if langMap == nil {
		return ""
	}
	for _, lang := range langs {
		if s := langMap.StringAt(lang, 0); s != "" {
			return s
		}
	}
	return ""
}

// LangMap собирает все языки языковой карты, беря первую строку каждого массива
func (d Document) LangMap(key string) map[string]string {
	langMap := d.Object(key)
	if langMap == nil {
		return nil
	}
	out := make(map[string]string, len(langMap))
	for lang := range langMap {
		if s := langMap.StringAt(lang, 0); s != "" {
			out[lang] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Float парсит числовое значение по ключу; строки парсятся как parseFloat.
// Возвращает ok=false, если значения нет или оно не парсится.
func (d Document) Float(key string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	return asFloat(d[key])
}

// StringSlice возвращает значение как срез строк; одиночная строка
// оборачивается в срез из одного элемента. Никогда не возвращает nil.
func (d Document) StringSlice(key string) []string {
	if d == nil {
		return []string{}
	}
	switch v := d[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return []string{}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
