package models

import "testing"

func TestCreateMenuItemRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateMenuItemRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &CreateMenuItemRequest{
				Name:            "Jollof Rice with Chicken",
				Description:     "Aromatic rice in tomato sauce",
				Price:           25.00,
				Category:        CategoryLunch,
				PreparationTime: 30,
			},
			wantErr: false,
		},
		{
			name: "missing name",
			req: &CreateMenuItemRequest{
				Price:           10,
				Category:        CategoryLunch,
				PreparationTime: 10,
			},
			wantErr: true,
		},
		{
			name: "negative price",
			req: &CreateMenuItemRequest{
				Name:            "Waakye",
				Price:           -1,
				Category:        CategoryLunch,
				PreparationTime: 10,
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			req: &CreateMenuItemRequest{
				Name:            "Waakye",
				Price:           20,
				Category:        "brunch",
				PreparationTime: 10,
			},
			wantErr: true,
		},
		{
			name: "zero preparation time",
			req: &CreateMenuItemRequest{
				Name:            "Waakye",
				Price:           20,
				Category:        CategoryLunch,
				PreparationTime: 0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateMenuItemRequestValidate(t *testing.T) {
	badPrice := -0.5
	badCategory := Category("midnight")
	empty := " "
	goodPrice := 12.5

	tests := []struct {
		name    string
		req     *UpdateMenuItemRequest
		wantErr bool
	}{
		{"empty update is valid", &UpdateMenuItemRequest{}, false},
		{"price update", &UpdateMenuItemRequest{Price: &goodPrice}, false},
		{"negative price", &UpdateMenuItemRequest{Price: &badPrice}, true},
		{"unknown category", &UpdateMenuItemRequest{Category: &badCategory}, true},
		{"blank name", &UpdateMenuItemRequest{Name: &empty}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *RegisterRequest
		wantErr bool
	}{
		{"valid", &RegisterRequest{Name: "Ama Mensah", Email: "ama@campus.edu", Password: "secret1"}, false},
		{"bad email", &RegisterRequest{Name: "Ama", Email: "not-an-email", Password: "secret1"}, true},
		{"short password", &RegisterRequest{Name: "Ama", Email: "ama@campus.edu", Password: "abc"}, true},
		{"missing name", &RegisterRequest{Email: "ama@campus.edu", Password: "secret1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
