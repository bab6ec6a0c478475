//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/krapie/tldraw-custom/internal/editor"
)

var ed *editor.Editor

func main() {
	ed = editor.NewEditor()

	// Create the editor API object
	boardEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	boardEditor.Set("loadDocument", js.FuncOf(loadDocument))
	boardEditor.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	boardEditor.Set("setCurrentPage", js.FuncOf(setCurrentPage))
	boardEditor.Set("createShape", js.FuncOf(createShape))
	boardEditor.Set("deleteShape", js.FuncOf(deleteShape))
	boardEditor.Set("translateBy", js.FuncOf(translateBy))
	boardEditor.Set("translateTo", js.FuncOf(translateTo))
	boardEditor.Set("transform", js.FuncOf(transform))
	boardEditor.Set("setProperty", js.FuncOf(setProperty))
	boardEditor.Set("applyStyles", js.FuncOf(applyStyles))
	boardEditor.Set("moveHandle", js.FuncOf(moveHandle))
	boardEditor.Set("setSelection", js.FuncOf(setSelection))

	// --- Queries (frontend ← backend) ---
	boardEditor.Set("render", js.FuncOf(render))
	boardEditor.Set("hitTest", js.FuncOf(hitTest))
	boardEditor.Set("hitTestBounds", js.FuncOf(hitTestBounds))
	boardEditor.Set("getSelection", js.FuncOf(getSelection))
	boardEditor.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	boardEditor.Set("getShape", js.FuncOf(getShape))
	boardEditor.Set("getShapeBounds", js.FuncOf(getShapeBounds))
	boardEditor.Set("getDocument", js.FuncOf(getDocument))

	// Register on global scope
	js.Global().Set("boardEditor", boardEditor)

	// Signal that WASM is ready
	js.Global().Set("boardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	if err := ed.LoadDocument(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	boardID := "board_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}
	ed.LoadSampleDocument(boardID)
	return ok()
}

func setCurrentPage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := ed.SetCurrentPage(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func createShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing shape kind"})
	}
	props := ""
	if len(args) > 1 {
		props = args[1].String()
	}
	id, err := ed.CreateShape(args[0].String(), props)
	if err != nil {
		return fail(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func deleteShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := ed.DeleteShape(args[0].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func translateBy(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	if err := ed.TranslateBy(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func translateTo(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	if err := ed.TranslateTo(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return fail(err)
	}
	return ok()
}

func transform(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	info := ""
	if len(args) > 2 {
		info = args[2].String()
	}
	solo := len(args) > 3 && args[3].Bool()
	if err := ed.Transform(args[0].String(), args[1].String(), info, solo); err != nil {
		return fail(err)
	}
	return ok()
}

func setProperty(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	if err := ed.SetProperty(args[0].String(), args[1].String(), args[2].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func applyStyles(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	if err := ed.ApplyStyles(args[0].String(), args[1].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func moveHandle(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	if err := ed.MoveHandle(args[0].String(), args[1].String()); err != nil {
		return fail(err)
	}
	return ok()
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		ed.SetSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		ed.SetSelection(nil)
		return nil
	}

	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	ed.SetSelection(ids)
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.HitTest(args[0].Float(), args[1].Float()))
}

func hitTestBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("[]")
	}
	ids, err := ed.HitTestBounds(args[0].String())
	if err != nil {
		return js.ValueOf("[]")
	}
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetSelection())
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetSelectionBounds())
}

func getShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	data, err := ed.GetShape(args[0].String())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(data)
}

func getShapeBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("{}")
	}
	data, err := ed.GetShapeBounds(args[0].String())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(data)
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetDocument())
}
