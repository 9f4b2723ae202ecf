// Package flag has flag.Value implementations for repeatable and
// structured command line flags.
package flag

import (
	"fmt"
	"strings"
)

type Argslice []string

func (s *Argslice) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *Argslice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// UserAccess is a "EMAIL:ACCESS_LEVEL" flag value, for granting workspace
// access from the command line.
type UserAccess struct {
	Email       string
	AccessLevel string
}

func (u UserAccess) String() string {
	if u.Email == "" {
		return ""
	}
	return u.Email + ":" + u.AccessLevel
}

func (u *UserAccess) Parse(v string) error {
	email, level, ok := strings.Cut(v, ":")
	if !ok || email == "" || level == "" {
		return fmt.Errorf("not formatted as EMAIL:ACCESS_LEVEL: %s", v)
	}
	u.Email = email
	u.AccessLevel = strings.ToUpper(level)
	return nil
}

// UserAccesses is a repeatable UserAccess flag.
type UserAccesses []UserAccess

func (us *UserAccesses) String() string {
	if us == nil || len(*us) == 0 {
		return ""
	}
	ss := make([]string, 0, len(*us))
	for _, u := range *us {
		ss = append(ss, u.String())
	}
	return strings.Join(ss, " ")
}

func (us *UserAccesses) Set(v string) error {
	var u UserAccess
	if err := u.Parse(v); err != nil {
		return err
	}
	*us = append(*us, u)
	return nil
}
