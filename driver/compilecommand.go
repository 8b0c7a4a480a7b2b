package driver

import "encoding/json"

// CompileCommand is one entry of a compile_commands.json compilation
// database, per the de facto Clang tooling format.
type CompileCommand struct {
	Directory string   `json:"directory"`
	Arguments []string `json:"arguments"`
	File      string   `json:"file"`
}

// LoadCompileCommands parses a compile_commands.json file's contents.
func LoadCompileCommands(data []byte) ([]CompileCommand, error) {
	var ccs []CompileCommand
	if err := json.Unmarshal(data, &ccs); err != nil {
		return nil, err
	}
	return ccs, nil
}
