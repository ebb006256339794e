package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func censusPatient(zip string, symptoms ...Symptom) *Patient {
	p := &Patient{ZipCode: zip}
	for _, s := range symptoms {
		p.Symptoms[s] = true
	}
	return p
}

func TestPatientsByZipArea(t *testing.T) {
	patients := []*Patient{
		censusPatient("1011AB"),
		censusPatient("1011XY"),
		censusPatient("1098CD"),
	}
	assert.Equal(t, map[string]int{"1011": 2, "1098": 1}, PatientsByZipArea(patients))
	assert.Empty(t, PatientsByZipArea(nil))
}

func TestZipAreasWithHighestSymptomShare_UsesShareNotCount(t *testing.T) {
	// GIVEN area 1011 with 2 of 4 coughing and area 1098 with 1 of 1 coughing
	patients := []*Patient{
		censusPatient("1011AA", Cough),
		censusPatient("1011AB", Cough),
		censusPatient("1011AC"),
		censusPatient("1011AD", Fever),
		censusPatient("1098ZZ", Cough),
	}

	// WHEN the census is taken
	got := ZipAreasWithHighestSymptomShare(patients)

	// THEN 1098 wins cough on share (100% > 50%) and fever goes to the only area reporting it
	assert.Equal(t, "1098", got[Cough])
	assert.Equal(t, "1011", got[Fever])
	_, ok := got[Headache]
	assert.False(t, ok, "unreported symptoms are omitted")
}

func TestZipAreasWithHighestSymptomShare_TieGoesToSmallestArea(t *testing.T) {
	patients := []*Patient{
		censusPatient("1050AA", Headache),
		censusPatient("1020AA", Headache),
	}
	assert.Equal(t, "1020", ZipAreasWithHighestSymptomShare(patients)[Headache])
}

func TestPrintCensus_SortedOutput(t *testing.T) {
	patients := []*Patient{
		censusPatient("1050AA", Cough),
		censusPatient("1020AA"),
	}
	var buf bytes.Buffer
	PrintCensus(&buf, patients)

	out := buf.String()
	assert.Contains(t, out, "1020: 1")
	assert.Contains(t, out, "cough: 1050")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("1020: 1")), bytes.Index(buf.Bytes(), []byte("1050: 1")))
}
