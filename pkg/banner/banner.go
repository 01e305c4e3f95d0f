package banner

import (
	"fmt"
)

const banner = `
 ██████╗ ██████╗ ███╗   ██╗██╗   ██╗███████╗████████╗ ██████╗ ██████╗ ███████╗
██╔════╝██╔═══██╗████╗  ██║██║   ██║██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗██╔════╝
██║     ██║   ██║██╔██╗ ██║██║   ██║███████╗   ██║   ██║   ██║██████╔╝█████╗
██║     ██║   ██║██║╚██╗██║╚██╗ ██╔╝╚════██║   ██║   ██║   ██║██╔══██╗██╔══╝
╚██████╗╚██████╔╝██║ ╚████║ ╚████╔╝ ███████║   ██║   ╚██████╔╝██║  ██║███████╗
 ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝  ╚═══╝  ╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚══════╝
`

// Print writes the startup banner with the effective runtime settings.
func Print(addr, dbPath, sources, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config sources: %s\n", sources)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET  /v1/threads - List conversation threads")
	fmt.Println("POST /v1/threads/{id}/messages - Send a message (JSON: content, reply_to)")
	fmt.Println("GET  /v1/threads/{id}/messages - List visible messages in a thread")
	fmt.Println("POST /v1/threads/{id}/media - Upload an attachment (multipart: file, reply_to)")
	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X POST 'http://localhost%s/v1/threads/<id>/messages' -d '{\"content\": \"hello\"}'\n", addr)
	fmt.Printf("curl 'http://localhost%s/v1/threads'\n", addr)
}
