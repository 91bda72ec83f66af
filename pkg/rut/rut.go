// Package rut valida el Rol Único Tributario chileno (módulo 11).
package rut

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat = errors.New("rut: formato inválido")
	ErrDV     = errors.New("rut: dígito verificador inválido")
)

// ComputeDV calcula el dígito verificador para el cuerpo numérico del RUT.
// Los pesos 2..7 se aplican de derecha a izquierda de forma cíclica; 11 -> '0', 10 -> 'K'.
func ComputeDV(body string) (byte, error) {
	if body == "" {
		return 0, ErrFormat
	}
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, ErrFormat
		}
		sum += int(c-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// Split separa cuerpo y dígito verificador. Acepta "12.345.678-5", "12345678-5" o "123456785".
func Split(s string) (body string, dv byte, err error) {
	var clean []byte
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		switch {
		case r >= '0' && r <= '9', r == 'K':
			clean = append(clean, byte(r))
		case r == '.', r == '-', r == ' ':
		default:
			return "", 0, ErrFormat
		}
	}
	if len(clean) < 2 || len(clean) > 9 {
		return "", 0, ErrFormat
	}
	body = strings.TrimLeft(string(clean[:len(clean)-1]), "0")
	if body == "" || strings.ContainsRune(body, 'K') {
		return "", 0, ErrFormat
	}
	return body, clean[len(clean)-1], nil
}

// Validate comprueba formato y dígito verificador.
func Validate(s string) error {
	body, dv, err := Split(s)
	if err != nil {
		return err
	}
	expected, err := ComputeDV(body)
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("%w: esperado %c, recibido %c", ErrDV, expected, dv)
	}
	return nil
}

// Normalize valida y devuelve el RUT en formato canónico con puntos y guion (12.345.678-5).
func Normalize(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	body, dv, _ := Split(s)
	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte('-')
	b.WriteByte(dv)
	return b.String(), nil
}
