package mcpserver

import (
	"context"
	"fmt"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"elmora/internal/record"
)

// registerRecordTools mounts the CRUD tools for all four record collections.
func (s *service) registerRecordTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_stores",
		Description: "List the stores the user can walk to",
	}, s.listStoresHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_store",
		Description: "Add or update a store with its distance and walking time",
	}, s.addStoreHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove_store",
		Description: "Remove a store by ID",
	}, s.removeStoreHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_contacts",
		Description: "List the user's contacts",
	}, s.listContactsHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_contact",
		Description: "Add or update a contact with a phone number",
	}, s.addContactHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove_contact",
		Description: "Remove a contact by ID",
	}, s.removeContactHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_plans",
		Description: "List the outing plan suggestions",
	}, s.listPlansHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_plan",
		Description: "Add an outing plan suggestion",
	}, s.addPlanHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove_plan",
		Description: "Remove an outing plan suggestion by ID",
	}, s.removePlanHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_medicines",
		Description: "List the user's scheduled medicines",
	}, s.listMedicinesHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_medicine",
		Description: "Add or update a medicine; its daily reminder follows the time of day",
	}, s.addMedicineHandler)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "remove_medicine",
		Description: "Remove a medicine by name and drop its daily reminder",
	}, s.removeMedicineHandler)
}

// syncMedicineReminders rebuilds the daily medicine reminders after an edit.
func (s *service) syncMedicineReminders() {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.SyncMedicines(s.records.Medicines.List()); err != nil {
		log.Printf("[mcp] medicine reminder sync failed: %v", err)
	}
}

// stores

type listStoresInput struct{}

type listStoresOutput struct {
	Stores []record.Store `json:"stores"`
}

func (s *service) listStoresHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listStoresInput) (*mcpsdk.CallToolResult, listStoresOutput, error) {
	stores := s.records.Stores.List()
	if stores == nil {
		stores = []record.Store{}
	}
	return nil, listStoresOutput{Stores: stores}, nil
}

type addStoreInput struct {
	ID            string `json:"id,omitempty" jsonschema:"Existing store ID to update; omit to create"`
	Name          string `json:"name" jsonschema:"Store name"`
	Distance      string `json:"distance,omitempty" jsonschema:"Display distance, e.g. 550 m"`
	EstimatedTime int    `json:"estimatedTime" jsonschema:"Walking time in minutes"`
}

type addStoreOutput struct {
	Store record.Store `json:"store"`
}

func (s *service) addStoreHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input addStoreInput) (*mcpsdk.CallToolResult, addStoreOutput, error) {
	if input.Name == "" {
		return nil, addStoreOutput{}, fmt.Errorf("name is required")
	}
	if input.EstimatedTime < 0 {
		return nil, addStoreOutput{}, fmt.Errorf("estimatedTime must not be negative")
	}
	store := record.Store{
		ID:            input.ID,
		Name:          input.Name,
		Distance:      input.Distance,
		EstimatedTime: input.EstimatedTime,
	}
	if store.ID == "" {
		store.ID = record.NewID()
	}
	if err := s.records.Stores.Save(store); err != nil {
		return nil, addStoreOutput{}, fmt.Errorf("failed to save store: %w", err)
	}
	return nil, addStoreOutput{Store: store}, nil
}

type removeStoreInput struct {
	ID string `json:"id" jsonschema:"Store ID to remove"`
}

type removeOutput struct {
	Removed bool `json:"removed"`
}

func (s *service) removeStoreHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input removeStoreInput) (*mcpsdk.CallToolResult, removeOutput, error) {
	if _, ok := s.records.Stores.Get(input.ID); !ok {
		return nil, removeOutput{}, fmt.Errorf("store %q not found", input.ID)
	}
	if err := s.records.Stores.Delete(input.ID); err != nil {
		return nil, removeOutput{}, fmt.Errorf("failed to remove store: %w", err)
	}
	return nil, removeOutput{Removed: true}, nil
}

// contacts

type listContactsInput struct{}

type listContactsOutput struct {
	Contacts []record.Contact `json:"contacts"`
}

func (s *service) listContactsHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listContactsInput) (*mcpsdk.CallToolResult, listContactsOutput, error) {
	contacts := s.records.Contacts.List()
	if contacts == nil {
		contacts = []record.Contact{}
	}
	return nil, listContactsOutput{Contacts: contacts}, nil
}

type addContactInput struct {
	ID     string `json:"id,omitempty" jsonschema:"Existing contact ID to update; omit to create"`
	Name   string `json:"name" jsonschema:"Contact name"`
	Number string `json:"number" jsonschema:"Phone number"`
}

type addContactOutput struct {
	Contact record.Contact `json:"contact"`
}

func (s *service) addContactHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input addContactInput) (*mcpsdk.CallToolResult, addContactOutput, error) {
	if input.Name == "" || input.Number == "" {
		return nil, addContactOutput{}, fmt.Errorf("name and number are required")
	}
	contact := record.Contact{ID: input.ID, Name: input.Name, Number: input.Number}
	if contact.ID == "" {
		contact.ID = record.NewID()
	}
	if err := s.records.Contacts.Save(contact); err != nil {
		return nil, addContactOutput{}, fmt.Errorf("failed to save contact: %w", err)
	}
	return nil, addContactOutput{Contact: contact}, nil
}

type removeContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID to remove"`
}

func (s *service) removeContactHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input removeContactInput) (*mcpsdk.CallToolResult, removeOutput, error) {
	if _, ok := s.records.Contacts.Get(input.ID); !ok {
		return nil, removeOutput{}, fmt.Errorf("contact %q not found", input.ID)
	}
	if err := s.records.Contacts.Delete(input.ID); err != nil {
		return nil, removeOutput{}, fmt.Errorf("failed to remove contact: %w", err)
	}
	return nil, removeOutput{Removed: true}, nil
}

// plans

type listPlansInput struct{}

type listPlansOutput struct {
	Plans []record.Plan `json:"plans"`
}

func (s *service) listPlansHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listPlansInput) (*mcpsdk.CallToolResult, listPlansOutput, error) {
	plans := s.records.Plans.List()
	if plans == nil {
		plans = []record.Plan{}
	}
	return nil, listPlansOutput{Plans: plans}, nil
}

type addPlanInput struct {
	Plan string `json:"plan" jsonschema:"Free-text outing suggestion"`
}

type addPlanOutput struct {
	Plan record.Plan `json:"plan"`
}

func (s *service) addPlanHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input addPlanInput) (*mcpsdk.CallToolResult, addPlanOutput, error) {
	if input.Plan == "" {
		return nil, addPlanOutput{}, fmt.Errorf("plan is required")
	}
	plan := record.Plan{ID: record.NewID(), Plan: input.Plan}
	if err := s.records.Plans.Save(plan); err != nil {
		return nil, addPlanOutput{}, fmt.Errorf("failed to save plan: %w", err)
	}
	return nil, addPlanOutput{Plan: plan}, nil
}

type removePlanInput struct {
	ID string `json:"id" jsonschema:"Plan ID to remove"`
}

func (s *service) removePlanHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input removePlanInput) (*mcpsdk.CallToolResult, removeOutput, error) {
	if _, ok := s.records.Plans.Get(input.ID); !ok {
		return nil, removeOutput{}, fmt.Errorf("plan %q not found", input.ID)
	}
	if err := s.records.Plans.Delete(input.ID); err != nil {
		return nil, removeOutput{}, fmt.Errorf("failed to remove plan: %w", err)
	}
	return nil, removeOutput{Removed: true}, nil
}

// medicines

type listMedicinesInput struct{}

type listMedicinesOutput struct {
	Medicines []record.Medicine `json:"medicines"`
}

func (s *service) listMedicinesHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listMedicinesInput) (*mcpsdk.CallToolResult, listMedicinesOutput, error) {
	medicines := s.records.Medicines.List()
	if medicines == nil {
		medicines = []record.Medicine{}
	}
	return nil, listMedicinesOutput{Medicines: medicines}, nil
}

type addMedicineInput struct {
	Name      string `json:"name" jsonschema:"Medicine name; doubles as its ID"`
	Dosage    string `json:"dosage" jsonschema:"Dosage, e.g. 500 mg"`
	TimeOfDay string `json:"timeOfDay" jsonschema:"24h HH:MM time the medicine is due"`
	Frequency string `json:"frequency,omitempty" jsonschema:"Frequency label, e.g. daily"`
	Notes     string `json:"notes,omitempty" jsonschema:"Extra instructions, e.g. after food"`
}

type addMedicineOutput struct {
	Medicine record.Medicine `json:"medicine"`
}

func (s *service) addMedicineHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input addMedicineInput) (*mcpsdk.CallToolResult, addMedicineOutput, error) {
	if input.Name == "" {
		return nil, addMedicineOutput{}, fmt.Errorf("name is required")
	}
	if input.TimeOfDay == "" {
		return nil, addMedicineOutput{}, fmt.Errorf("timeOfDay is required")
	}
	med := record.Medicine{
		Name:      input.Name,
		Dosage:    input.Dosage,
		TimeOfDay: input.TimeOfDay,
		Frequency: input.Frequency,
		Notes:     input.Notes,
	}
	if err := s.records.Medicines.Save(med); err != nil {
		return nil, addMedicineOutput{}, fmt.Errorf("failed to save medicine: %w", err)
	}
	s.syncMedicineReminders()
	return nil, addMedicineOutput{Medicine: med}, nil
}

type removeMedicineInput struct {
	Name string `json:"name" jsonschema:"Medicine name to remove"`
}

func (s *service) removeMedicineHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input removeMedicineInput) (*mcpsdk.CallToolResult, removeOutput, error) {
	if _, ok := s.records.Medicines.Get(input.Name); !ok {
		return nil, removeOutput{}, fmt.Errorf("medicine %q not found", input.Name)
	}
	if err := s.records.Medicines.Delete(input.Name); err != nil {
		return nil, removeOutput{}, fmt.Errorf("failed to remove medicine: %w", err)
	}
	s.syncMedicineReminders()
	return nil, removeOutput{Removed: true}, nil
}
