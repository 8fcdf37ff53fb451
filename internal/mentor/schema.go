package mentor

import (
	"github.com/cedarpro/cybermentor/internal/contract"
	"github.com/cedarpro/cybermentor/internal/llm"
)

// ResponseSchema is the structured-output shape requested from the model
// for chat. Practice and assessment generation deliberately request no
// schema; their shapes live only in prompt prose.
var ResponseSchema = &llm.Schema{
	Name:        "mentor-response",
	Description: "Structured mentor reply with summary, guidance and confidence",
	Definition:  contract.MentorResponseDefinition(),
}
