package content

import (
	"fmt"
	"strings"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
)

const systemPrompt = "You are a copywriter for a car dealership. Write naturally, " +
	"stay factual about the vehicle details you are given, and never invent mileage, " +
	"price, or condition claims."

func vehicleSummary(item inventorydomain.InventoryItem) string {
	parts := []string{fmt.Sprintf("%d %s %s", item.Year, item.Make, item.Model)}
	if item.Mileage > 0 {
		parts = append(parts, fmt.Sprintf("%d miles", item.Mileage))
	}
	if item.Price > 0 {
		parts = append(parts, fmt.Sprintf("priced at $%.0f", item.Price))
	}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		parts = append(parts, "notes: "+desc)
	}
	return strings.Join(parts, ", ")
}

func listingPrompt(item inventorydomain.InventoryItem) string {
	return fmt.Sprintf(
		"Write a dealership listing description (120-180 words) for this vehicle: %s. "+
			"Close with a short call to action.",
		vehicleSummary(item),
	)
}

func captionPrompt(item inventorydomain.InventoryItem, platform string) string {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		platform = "Instagram"
	}
	return fmt.Sprintf(
		"Write a %s caption (max 2 sentences, 2-3 fitting hashtags) for this vehicle: %s.",
		platform, vehicleSummary(item),
	)
}

func scriptPrompt(item inventorydomain.InventoryItem, style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		style = "walkaround"
	}
	return fmt.Sprintf(
		"Write a 30-second %s video script for this vehicle: %s. "+
			"Format as short spoken lines with shot cues in brackets.",
		style, vehicleSummary(item),
	)
}
