package vox

import (
	"encoding/binary"
	"fmt"

	"cogentcore.org/core/base/ordmap"
)

// Все целые в формате занимают ровно 4 байта, little-endian.

// AppendUint32 дописывает v в little-endian формате
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendInt32 дописывает v в дополнительном коде, little-endian
func AppendInt32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

// AppendString дописывает строку: 4 байта длины, затем байты без терминатора.
func AppendString(dst []byte, s string) ([]byte, error) {
	if err := checkASCII("string", s); err != nil {
		return dst, err
	}
	n, err := checkUint32("string length", len(s))
	if err != nil {
		return dst, err
	}
	dst = AppendUint32(dst, n)
	return append(dst, s...), nil
}

// Dict - упорядоченный словарь string→string.
// Порядок вставки сохраняется и попадает в файл байт в байт.
type Dict struct {
	m *ordmap.Map[string, string]
}

// NewDict создаёт пустой словарь
func NewDict() *Dict {
	return &Dict{m: ordmap.New[string, string]()}
}

// Set добавляет пару. Повторный ключ заменяет значение, сохраняя позицию.
func (d *Dict) Set(key, value string) *Dict {
	if d.m == nil {
		d.m = ordmap.New[string, string]()
	}
	d.m.Add(key, value)
	return d
}

// pairs возвращает пары в порядке вставки; безопасно для nil
func (d *Dict) pairs() []ordmap.KeyValue[string, string] {
	if d == nil || d.m == nil {
		return nil
	}
	return d.m.Order
}

// Get возвращает значение по ключу
func (d *Dict) Get(key string) (string, bool) {
	if d == nil || d.m == nil {
		return "", false
	}
	return d.m.ValueByKeyTry(key)
}

// Len возвращает число пар; nil-словарь пуст
func (d *Dict) Len() int {
	return len(d.pairs())
}

// Keys возвращает ключи в порядке вставки
func (d *Dict) Keys() []string {
	pairs := d.pairs()
	keys := make([]string, len(pairs))
	for i, kv := range pairs {
		keys[i] = kv.Key
	}
	return keys
}

// Clone возвращает независимую копию
func (d *Dict) Clone() *Dict {
	c := NewDict()
	for _, kv := range d.pairs() {
		c.m.Add(kv.Key, kv.Value)
	}
	return c
}

// Validate проверяет, что все ключи и значения - ASCII
func (d *Dict) Validate() error {
	for _, kv := range d.pairs() {
		if err := checkASCII(fmt.Sprintf("key %q", kv.Key), kv.Key); err != nil {
			return err
		}
		if err := checkASCII(fmt.Sprintf("value of %q", kv.Key), kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// AppendDict дописывает словарь: 4 байта числа пар, затем ключ и значение
// каждой пары как строки. nil кодируется как пустой словарь.
func AppendDict(dst []byte, d *Dict) ([]byte, error) {
	n, err := checkUint32("dict size", d.Len())
	if err != nil {
		return dst, err
	}
	dst = AppendUint32(dst, n)
	for _, kv := range d.pairs() {
		if dst, err = AppendString(dst, kv.Key); err != nil {
			return dst, fmt.Errorf("dict key %q: %w", kv.Key, err)
		}
		if dst, err = AppendString(dst, kv.Value); err != nil {
			return dst, fmt.Errorf("dict value for %q: %w", kv.Key, err)
		}
	}
	return dst, nil
}
