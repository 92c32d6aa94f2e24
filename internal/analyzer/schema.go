package analyzer

// ResponseSchema returns the structured-output contract sent to the model
// as a generation constraint. The same contract is enforced locally by
// InterpretAnalysis: the model's adherence is best-effort, never assumed.
func ResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"summary": map[string]interface{}{
				"type":        "STRING",
				"description": "The simplified, single-paragraph summary of the entire document.",
			},
			"simplification_level": map[string]interface{}{
				"type":        "STRING",
				"description": "The reading level used for simplification (e.g., 'Grade 6').",
			},
			"analysis_results": map[string]interface{}{
				"type": "ARRAY",
				"items": map[string]interface{}{
					"type": "OBJECT",
					"properties": map[string]interface{}{
						"clause_title": map[string]interface{}{
							"type":        "STRING",
							"description": "The title of the clause or section.",
						},
						"simplified_content": map[string]interface{}{
							"type":        "STRING",
							"description": "A short, simplified explanation of the clause.",
						},
						"risk_level": map[string]interface{}{
							"type":        "STRING",
							"enum":        []string{"Low", "Medium", "High"},
							"description": "Hypothetical risk level for a non-expert.",
						},
						"entities": map[string]interface{}{
							"type": "ARRAY",
							"items": map[string]interface{}{
								"type": "OBJECT",
								"properties": map[string]interface{}{
									"type": map[string]interface{}{"type": "STRING"},
									"name": map[string]interface{}{"type": "STRING"},
								},
							},
						},
					},
					"required": []string{"clause_title", "simplified_content", "risk_level", "entities"},
				},
			},
		},
		"required": []string{"summary", "simplification_level", "analysis_results"},
	}
}
