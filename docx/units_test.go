package docx

import "testing"

func TestConversions(t *testing.T) {
	if got := Points(0); got != 0 {
		t.Errorf("Points(0) = %d, want 0", got)
	}
	if got := Points(200); got != 4000 {
		t.Errorf("Points(200) = %d, want 4000", got)
	}
	if got := Inches(0.5); got != 720 {
		t.Errorf("Inches(0.5) = %d, want 720", got)
	}
	if got := Inches(0.75); got != 1080 {
		t.Errorf("Inches(0.75) = %d, want 1080", got)
	}
	if got := Twips(1080).Inches(); got != 0.75 {
		t.Errorf("Inches() = %v, want 0.75", got)
	}
	if got := Twips(30).Points(); got != 1.5 {
		t.Errorf("Points() = %v, want 1.5", got)
	}
	if got := Twips(-240).String(); got != "-240" {
		t.Errorf("String() = %q, want -240", got)
	}
}

func TestParseTwips(t *testing.T) {
	tests := []struct {
		in      string
		want    Twips
		wantErr bool
	}{
		{in: "720", want: 720},
		{in: " 1440 ", want: 1440},
		{in: "-120", want: -120},
		{in: "0.5in", want: 720},
		{in: "12pt", want: 240},
		{in: "2.54cm", want: 1440},
		{in: "25.4mm", want: 1440},
		{in: "1pc", want: 240},
		{in: "1pi", want: 240},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "12px", wantErr: true},
		{in: "x.5in", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTwips(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTwips(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTwips(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
