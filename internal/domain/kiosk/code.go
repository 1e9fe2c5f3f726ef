package kiosk

import (
	"errors"
	"strconv"
	"strings"
)

// Role tells whether a kiosk code belongs to a member or an employee.
type Role string

const (
	RoleMember   Role = "member"
	RoleEmployee Role = "employee"
)

// employeePrefix marks staff codes on the keypad, e.g. "E-5".
const employeePrefix = "E-"

var ErrInvalidCode = errors.New("invalid kiosk code")

// Code is the parsed form of what was typed at the kiosk.
type Code struct {
	Role   Role
	Number int
}

// ParseCode interprets the raw kiosk input. Input is trimmed and
// uppercased first, so " e-5 " and "E-5" are the same employee code.
// A leading "E-" marks an employee; anything else must be a bare
// base-10 number and resolves to a member.
func ParseCode(raw string) (Code, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return Code{}, ErrInvalidCode
	}

	if rest, ok := strings.CutPrefix(s, employeePrefix); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return Code{}, ErrInvalidCode
		}
		return Code{Role: RoleEmployee, Number: n}, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Code{}, ErrInvalidCode
	}
	return Code{Role: RoleMember, Number: n}, nil
}

// FormatCode renders a code the way it is typed: "E-5" for employees,
// "310" for members.
func FormatCode(c Code) string {
	if c.Role == RoleEmployee {
		return employeePrefix + strconv.Itoa(c.Number)
	}
	return strconv.Itoa(c.Number)
}
