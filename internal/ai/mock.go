package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

type scaffoldDocument struct {
	FileStructure     []string          `json:"file_structure"`
	KeyFiles          map[string]string `json:"key_files"`
	SetupInstructions []string          `json:"setup_instructions"`
	EstimatedTime     string            `json:"estimated_time"`
}

// mockScaffold строит детерминированный каркас только из конфигурации проекта.
func mockScaffold(config map[string]any) string {
	name := configString(config, "name")
	if name == "" {
		name = "project"
	}
	frontend := strings.ToLower(configString(config, "frontend"))
	backend := strings.ToLower(configString(config, "backend"))
	features := configList(config, "features")

	doc := scaffoldDocument{
		FileStructure: []string{"README.md", ".gitignore"},
		KeyFiles: map[string]string{
			"README.md": fmt.Sprintf("# %s\n\n%s\n", name, configString(config, "description")),
		},
	}

	switch {
	case frontend == "":
	case strings.Contains(frontend, "next"):
		doc.FileStructure = append(doc.FileStructure, "frontend/", "frontend/package.json", "frontend/app/page.tsx", "frontend/app/layout.tsx")
		doc.KeyFiles["frontend/app/page.tsx"] = fmt.Sprintf("export default function Home() {\n  return <h1>%s</h1>;\n}\n", name)
		doc.SetupInstructions = append(doc.SetupInstructions, "cd frontend && npm install", "npm run dev")
	case strings.Contains(frontend, "vue"):
		doc.FileStructure = append(doc.FileStructure, "frontend/", "frontend/package.json", "frontend/src/App.vue", "frontend/src/main.js")
		doc.KeyFiles["frontend/src/App.vue"] = fmt.Sprintf("<template>\n  <h1>%s</h1>\n</template>\n", name)
		doc.SetupInstructions = append(doc.SetupInstructions, "cd frontend && npm install", "npm run dev")
	default:
		doc.FileStructure = append(doc.FileStructure, "frontend/", "frontend/package.json", "frontend/src/App.js", "frontend/src/index.js")
		doc.KeyFiles["frontend/src/App.js"] = fmt.Sprintf("export default function App() {\n  return <h1>%s</h1>;\n}\n", name)
		doc.SetupInstructions = append(doc.SetupInstructions, "cd frontend && npm install", "npm start")
	}

	switch {
	case backend == "":
	case strings.Contains(backend, "node") || strings.Contains(backend, "express"):
		doc.FileStructure = append(doc.FileStructure, "backend/", "backend/package.json", "backend/server.js")
		doc.KeyFiles["backend/server.js"] = "const express = require('express');\nconst app = express();\napp.listen(8000);\n"
		doc.SetupInstructions = append(doc.SetupInstructions, "cd backend && npm install", "node server.js")
	case backend == "go" || strings.Contains(backend, "golang") || strings.Contains(backend, "gin"):
		doc.FileStructure = append(doc.FileStructure, "backend/", "backend/go.mod", "backend/cmd/server/main.go")
		doc.KeyFiles["backend/cmd/server/main.go"] = "package main\n\nfunc main() {}\n"
		doc.SetupInstructions = append(doc.SetupInstructions, "cd backend && go run ./cmd/server")
	default:
		doc.FileStructure = append(doc.FileStructure, "backend/", "backend/requirements.txt", "backend/server.py")
		doc.KeyFiles["backend/server.py"] = "from fastapi import FastAPI\n\napp = FastAPI()\n"
		doc.SetupInstructions = append(doc.SetupInstructions, "cd backend && pip install -r requirements.txt", "uvicorn server:app --reload")
	}

	if doc.SetupInstructions == nil {
		doc.SetupInstructions = []string{"Review README.md"}
	}

	hours := 8 + 4*len(features) + 2*len(configList(config, "addons"))
	doc.EstimatedTime = fmt.Sprintf("%d hours", hours)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// mockAnalysis шаблонный анализ, когда модель недоступна.
func mockAnalysis(repoURL, requirements string) string {
	req := strings.TrimSpace(requirements)
	if req == "" {
		req = "general improvements"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n\n", repoURL)
	b.WriteString("1. Current tech stack analysis: automatic analysis is unavailable, a manual review is required.\n")
	fmt.Fprintf(&b, "2. Suggested improvements: %s.\n", req)
	b.WriteString("3. New features to add: to be agreed after the review.\n")
	b.WriteString("4. Code quality recommendations: add tests and CI checks.\n")
	fmt.Fprintf(&b, "5. Estimated cost for enhancements: from ₹%d.\n", AnalysisBaseCost)
	b.WriteString("6. Timeline estimate: 1-2 weeks.\n")
	return b.String()
}
