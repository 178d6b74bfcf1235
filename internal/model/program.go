package model

// Program is the extraction result for one source file.
type Program struct {
	Name      string
	Variables *VariableTable
	Functions []*Function
}

func NewProgram(name string) *Program {
	return &Program{Name: name, Variables: NewVariableTable()}
}

func (p *Program) AddFunction(f *Function) {
	p.Functions = append(p.Functions, f)
}

// Function returns the function with the given name, or nil.
func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
