package llm

import "github.com/sashabaranov/go-openai"

// Имена функций, доступных агенту.
const (
	ToolNavigate = "navigate"
	ToolClick    = "click"
	ToolType     = "type"
	ToolScroll   = "scroll"
	ToolReadCV   = "read_cv"
	ToolReadJobs = "read_jobs"
	ToolSaveJob  = "save_jobs"
	ToolUploadCV = "upload_cv"
	ToolDone     = "done"
)

type schema = map[string]any

func tool(name, description string, properties schema, required ...string) openai.Tool {
	params := schema{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		params["required"] = required
	}
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}
}

func prop(typ, description string) schema {
	return schema{"type": typ, "description": description}
}

// Tools - функции браузера и пайплайна.
func Tools() []openai.Tool {
	return []openai.Tool{
		tool(ToolNavigate,
			"Open a URL in the current tab.",
			schema{"url": prop("string", "Absolute URL to open")},
			"url"),
		tool(ToolClick,
			"Click an interactive element by its index from the page state.",
			schema{"index": prop("integer", "Element index")},
			"index"),
		tool(ToolType,
			"Type text into an input element by its index.",
			schema{
				"index": prop("integer", "Element index"),
				"text":  prop("string", "Text to type"),
			},
			"index", "text"),
		tool(ToolScroll,
			"Scroll the page one screen up or down.",
			schema{"direction": schema{"type": "string", "enum": []string{"down", "up"}}},
			"direction"),
		tool(ToolReadCV,
			"Read my cv for context to fill forms.",
			schema{}),
		tool(ToolReadJobs,
			"Read jobs already saved to the file.",
			schema{}),
		tool(ToolSaveJob,
			"Save one job to the file.",
			schema{
				"title":     prop("string", "Job title"),
				"link":      prop("string", "Link to the job posting"),
				"company":   prop("string", "Company name"),
				"fit_score": prop("number", "How well the cv fits the job, from 0 to 1"),
				"location":  prop("string", "Job location"),
				"salary":    prop("string", "Salary if listed"),
			},
			"title", "link", "company", "fit_score"),
		tool(ToolUploadCV,
			"Upload cv to element. Call this function to upload if element is not found, "+
				"try with different index of the same upload element.",
			schema{"index": prop("integer", "Index of the file upload element")},
			"index"),
		tool(ToolDone,
			"Finish the task and report what was done.",
			schema{"summary": prop("string", "Short summary of the result")},
			"summary"),
	}
}
