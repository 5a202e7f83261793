// Утилитарные функции общего назначения
package utils

import "strings"

// NormalizeEmail приводит email к виду, в котором он хранится в БД:
// без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
