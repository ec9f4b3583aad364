package export

import (
	"encoding/xml"
	"fmt"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// XML document shapes for the order-system feed. Empty elements are omitted
// so downstream parsers only ever see populated fields.

type xmlOrderData struct {
	XMLName                   xml.Name          `xml:"OrderData"`
	SourceFile                string            `xml:"SourceFile,omitempty"`
	DrawingNumber             string            `xml:"DrawingNumber,omitempty"`
	Revision                  string            `xml:"Revision,omitempty"`
	MaterialGrade             string            `xml:"MaterialGrade,omitempty"`
	PostTreatment             string            `xml:"PostTreatment,omitempty"`
	WeldingDesignation        string            `xml:"WeldingDesignation,omitempty"`
	WeldFinish                string            `xml:"WeldFinish,omitempty"`
	BreakSharpEdges           bool              `xml:"BreakSharpEdges"`
	RetainingRingGroovesSharp bool              `xml:"RetainingRingGroovesSharp"`
	SurfaceRoughness          *xmlRoughness     `xml:"SurfaceRoughness,omitempty"`
	GeometricalTolerancing    *xmlTolerancing   `xml:"GeometricalTolerancing,omitempty"`
	DimensionalTolerancing    *xmlTolerancing   `xml:"DimensionalTolerancing,omitempty"`
	TolerancesGeneralLinear   *xmlBandTable     `xml:"TolerancesGeneralLinear,omitempty"`
	TolerancesMachining       *xmlBandTable     `xml:"TolerancesMachining,omitempty"`
	TolerancesWeldedSheet     *xmlBandTable     `xml:"TolerancesWeldedSheet,omitempty"`
	WeldingNotes              *xmlNoteContainer `xml:"WeldingNotes,omitempty"`
	Notes                     *xmlNoteContainer `xml:"Notes,omitempty"`
}

type xmlRoughness struct {
	Standard  string `xml:"Standard,omitempty"`
	Parameter string `xml:"Parameter,omitempty"`
	Value     string `xml:"Value,omitempty"`
	Unit      string `xml:"Unit,omitempty"`
}

type xmlTolerancing struct {
	Standard string `xml:"Standard,omitempty"`
	Scope    string `xml:"Scope,omitempty"`
}

type xmlBandTable struct {
	Unit  string    `xml:"Unit"`
	Bands []xmlBand `xml:"Bands>Band"`
}

type xmlBand struct {
	Range string `xml:"range,attr"`
	Value string `xml:",chardata"`
}

type xmlNoteContainer struct {
	Notes []string `xml:"Note"`
}

// BuildXML renders one record as a pretty-printed OrderData document.
func BuildXML(filename string, rec schema.Record) ([]byte, error) {
	doc := xmlOrderData{
		SourceFile:                filename,
		DrawingNumber:             deref(rec.DrawingNumber),
		Revision:                  deref(rec.Revision),
		MaterialGrade:             deref(rec.MaterialGrade),
		PostTreatment:             deref(rec.PostTreatment),
		WeldingDesignation:        deref(rec.WeldingDesignation),
		WeldFinish:                deref(rec.WeldFinish),
		BreakSharpEdges:           rec.BreakSharpEdges,
		RetainingRingGroovesSharp: rec.RetainingRingGroovesSharp,
		WeldingNotes:              xmlNotes(rec.WeldingNotes),
		Notes:                     xmlNotes(rec.Notes),
	}
	if sr := rec.SurfaceRoughness; sr != nil {
		doc.SurfaceRoughness = &xmlRoughness{
			Standard:  sr.Standard,
			Parameter: sr.Parameter,
			Value:     sr.Value,
			Unit:      sr.Unit,
		}
	}
	doc.GeometricalTolerancing = xmlTol(rec.GeometricalTolerancing)
	doc.DimensionalTolerancing = xmlTol(rec.DimensionalTolerancing)
	doc.TolerancesGeneralLinear = xmlTable(rec.TolerancesGeneralLinear)
	doc.TolerancesMachining = xmlTable(rec.TolerancesMachining)
	doc.TolerancesWeldedSheet = xmlTable(rec.TolerancesWeldedSheet)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xml marshal: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func xmlNotes(notes []string) *xmlNoteContainer {
	if len(notes) == 0 {
		return nil
	}
	return &xmlNoteContainer{Notes: notes}
}

func xmlTol(t *schema.Tolerancing) *xmlTolerancing {
	if t == nil {
		return nil
	}
	return &xmlTolerancing{Standard: t.Standard, Scope: t.Scope}
}

func xmlTable(t *schema.ToleranceTable) *xmlBandTable {
	if t == nil {
		return nil
	}
	out := &xmlBandTable{Unit: t.Unit}
	for _, band := range constants.BandKeys {
		if v, ok := t.Bands[band]; ok && v != "" {
			out.Bands = append(out.Bands, xmlBand{Range: band, Value: v})
		}
	}
	return out
}
