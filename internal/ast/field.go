package ast

import "fmt"

// Param is a function parameter. Type is informational only, nothing
// checks it.
type Param struct {
	Name string
	Type string
}

func (param Param) String() string {
	if param.Type == "" {
		return param.Name
	}
	return fmt.Sprintf("%s: %s", param.Name, param.Type)
}
