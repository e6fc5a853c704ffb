package service

import (
	"encoding/json"
	"log"
)

func publishJSON(p Publisher, payload map[string]interface{}) {
	if p == nil {
		return
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Warning: failed to marshal event payload: %v", err)
		return
	}
	p.Publish(msg)
}
