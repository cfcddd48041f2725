package script

import (
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

func (s *State) install() {
	funcs := map[string]lua.LGFunction{
		"map": func(L *lua.LState) int {
			s.check(L, s.ed.Map(L.CheckString(1), L.CheckString(2), false))
			return 0
		},
		"map_input": func(L *lua.LState) int {
			s.check(L, s.ed.Map(L.CheckString(1), L.CheckString(2), true))
			return 0
		},
		"unmap": func(L *lua.LState) int {
			s.check(L, s.ed.Unmap(L.CheckString(1), L.OptBool(2, false)))
			return 0
		},
		"abbreviate": func(L *lua.LState) int {
			s.check(L, s.ed.Abbreviate(L.CheckString(1), L.CheckString(2)))
			return 0
		},
		"unabbreviate": func(L *lua.LState) int {
			s.check(L, s.ed.Unabbreviate(L.CheckString(1)))
			return 0
		},
		"set": func(L *lua.LState) int {
			s.check(L, s.ed.Set(L.CheckString(1), optionValue(L, 2)))
			return 0
		},
	}
	for name, fn := range funcs {
		s.L.SetGlobal(name, s.L.NewFunction(fn))
	}
}

func (s *State) check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

// optionValue renders argument n as option text.
func optionValue(L *lua.LState, n int) string {
	switch v := L.Get(n).(type) {
	case lua.LBool:
		return strconv.FormatBool(bool(v))
	case lua.LNumber:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case lua.LString:
		return string(v)
	}
	L.ArgError(n, "boolean, number or string expected")
	return ""
}
