package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers admin questions about the shop (stock levels, prices,
// revenue) by letting the model call into the inventory and report queries.
func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a computer trading shop's inventory dashboard.

	RULES:
	1. UPDATE: If a user asks to update an item's price by NAME, do NOT ask for the ID. Instead:
	   - Call 'check_inventory' to find the ID.
	   - Call 'update_item_price' using that ID.

	2. READ: If a user asks for PRICE, COST, STOCK, or DETAILS of an item:
	   - You MUST call 'check_inventory' to get the full list.
	   - Then read the JSON to find the specific item and answer the user.

	3. RESTOCK: If the user asks what needs restocking, call 'low_stock_items'.

	4. SALES: If the user asks for sales/revenue, use 'get_sales_report'.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY item details like ID, Name, Brand, SRP, Cost, or Stock.",
				},
				{
					Name:        "low_stock_items",
					Description: "List items that are low on stock or out of stock.",
				},
				{
					Name:        "update_item_price",
					Description: "Update the SRP price of a specific item using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"item_id":   {Type: genai.TypeInteger, Description: "ID of the item"},
							"new_price": {Type: genai.TypeNumber, Description: "New SRP price"},
						},
						Required: []string{"item_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeCheckInventory(ctx, session)
			case "low_stock_items":
				return executeLowStock(ctx, session)
			case "update_item_price":
				return executeUpdatePrice(ctx, session, funcCall), nil
			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// --- TOOL IMPLEMENTATIONS ---

type simpleItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Stock    int     `json:"stock"`
	SRP      float64 `json:"srp"`
	UnitCost float64 `json:"unit_cost"`
	Status   string  `json:"status"`
}

func executeCheckInventory(ctx context.Context, session *genai.ChatSession) (string, error) {
	var items []models.InventoryItem
	database.DB.Find(&items)

	var simpleList []simpleItem
	for _, item := range items {
		simpleList = append(simpleList, simpleItem{
			ID:       item.ID,
			Name:     item.ItemName,
			Brand:    item.Brand,
			Stock:    item.Quantity,
			SRP:      item.SRPPrice,
			UnitCost: item.UnitCost,
			Status:   item.StockStatus,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}

	return handleRecursiveToolCalls(ctx, session, finalResp), nil
}

func executeLowStock(ctx context.Context, session *genai.ChatSession) (string, error) {
	var items []models.InventoryItem
	database.DB.Where("quantity <= ?", models.LowStockThreshold).Find(&items)

	var simpleList []simpleItem
	for _, item := range items {
		simpleList = append(simpleList, simpleItem{
			ID:     item.ID,
			Name:   item.ItemName,
			Brand:  item.Brand,
			Stock:  item.Quantity,
			Status: item.StockStatus,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "low_stock_items",
		Response: map[string]interface{}{"items": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}

	return printResponse(finalResp), nil
}

// After a read tool the model sometimes follows up with an update call
func handleRecursiveToolCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_item_price" {
				return executeUpdatePrice(ctx, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	itemID := int(args["item_id"].(float64))
	newPrice := args["new_price"].(float64)

	result := database.DB.Model(&models.InventoryItem{}).Where("id = ?", itemID).Update("srp_price", newPrice)

	msg := "Success"
	if result.RowsAffected == 0 {
		msg = "Item ID not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_item_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(database.DB, start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
